package tui

import (
	"sync"
)

// Progress update kinds
const (
	UpdateStarted   = "started"
	UpdateCompleted = "completed"
	UpdateFailed    = "failed"
)

// ProgressUpdate represents an update to plan execution progress
type ProgressUpdate struct {
	Type        string // "started", "completed", "failed"
	StepIndex   int
	Description string
	Error       error
}

// ChannelProgressReporter implements rebase.ProgressReporter using channels
type ChannelProgressReporter struct {
	updates chan ProgressUpdate
	once    sync.Once
}

// NewChannelProgressReporter creates a channel-based progress reporter able to
// buffer every update of a plan with the given number of steps.
func NewChannelProgressReporter(steps int) *ChannelProgressReporter {
	return &ChannelProgressReporter{
		updates: make(chan ProgressUpdate, 2*steps+1),
	}
}

// Updates returns the channel for receiving updates
func (r *ChannelProgressReporter) Updates() <-chan ProgressUpdate {
	return r.updates
}

// Close closes the update channel (safe to call multiple times)
func (r *ChannelProgressReporter) Close() {
	r.once.Do(func() {
		close(r.updates)
	})
}

// StepStarted reports that a step has started
func (r *ChannelProgressReporter) StepStarted(stepIndex int, description string) {
	r.updates <- ProgressUpdate{
		Type:        UpdateStarted,
		StepIndex:   stepIndex,
		Description: description,
	}
}

// StepCompleted reports that a step has completed
func (r *ChannelProgressReporter) StepCompleted(stepIndex int) {
	r.updates <- ProgressUpdate{
		Type:      UpdateCompleted,
		StepIndex: stepIndex,
	}
}

// StepFailed reports that a step has failed
func (r *ChannelProgressReporter) StepFailed(stepIndex int, err error) {
	r.updates <- ProgressUpdate{
		Type:      UpdateFailed,
		StepIndex: stepIndex,
		Error:     err,
	}
}
