package rebase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	rebaseerrors "svnrebase.dev/svnrebase/internal/errors"
	"svnrebase.dev/svnrebase/internal/plan"
	"svnrebase.dev/svnrebase/internal/tui"
)

// State is the executor's position in its lifecycle
type State int

const (
	// StateIdle means no plan has been started
	StateIdle State = iota
	// StateRunning means a step is in progress
	StateRunning
	// StateSucceeded means every step ran and the plan file was removed
	StateSucceeded
	// StateFailed means execution halted; the plan file holds the remaining work
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrInterrupted is returned when execution stops between steps because the
// context was canceled
var ErrInterrupted = errors.New("interrupted")

// ExecuteOptions contains the collaborators for an Executor
type ExecuteOptions struct {
	Store    PlanStore
	Runner   Runner
	Splog    *tui.Splog
	Reporter ProgressReporter // Optional progress reporter
}

// Executor runs a persisted plan one step at a time. After each successful step
// the remaining steps are saved, so the plan file always describes the work left.
// A failed step is never retried; the plan file keeps it as its first step.
type Executor struct {
	opts    ExecuteOptions
	state   State
	current int
}

// NewExecutor creates an idle executor
func NewExecutor(opts ExecuteOptions) *Executor {
	return &Executor{opts: opts, current: -1}
}

// State returns the current lifecycle state
func (e *Executor) State() State {
	return e.state
}

// CurrentStep returns the index of the step being run, or of the step that
// failed; -1 before the first step.
func (e *Executor) CurrentStep() int {
	return e.current
}

// LoadPlan takes the plan file lock and reads the plan. The caller must release
// the lock with the returned function.
func (e *Executor) LoadPlan() (plan.Plan, func() error, error) {
	store := e.opts.Store

	unlock, err := store.Lock()
	if err != nil {
		return plan.Plan{}, nil, err
	}
	if !store.Exists() {
		_ = unlock()
		return plan.Plan{}, nil, rebaseerrors.NewPlanMissingError(store.Path())
	}

	p, err := store.Load()
	if err != nil {
		_ = unlock()
		if errors.Is(err, rebaseerrors.ErrPlanNotFound) {
			return plan.Plan{}, nil, rebaseerrors.NewPlanMissingError(store.Path())
		}
		return plan.Plan{}, nil, err
	}
	return p, unlock, nil
}

// Execute loads the persisted plan and runs it to completion or first failure
func (e *Executor) Execute(ctx context.Context) error {
	p, unlock, err := e.LoadPlan()
	if err != nil {
		e.state = StateFailed
		return err
	}
	defer func() { _ = unlock() }()

	return e.Run(ctx, p)
}

// Run executes p, which must be the plan currently persisted in the store.
// The caller holds the plan lock.
func (e *Executor) Run(ctx context.Context, p plan.Plan) error {
	splog := e.opts.Splog
	store := e.opts.Store

	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			e.state = StateFailed
			splog.Important("Interrupted before step %d of %d. Run again with --continue to resume.", i+1, p.Len())
			return fmt.Errorf("%w: %w", ErrInterrupted, err)
		}

		e.state = StateRunning
		e.current = i
		e.reportStarted(i, step.Comment)

		splog.Info("%s", step.Comment)
		splog.Important("%s", step.Command)

		exitCode, output, runErr := e.opts.Runner.Run(ctx, step.Command)
		if len(output) > 0 {
			splog.Info("%s", strings.Join(output, "\n"))
		}

		if runErr != nil || exitCode != 0 {
			stepErr := &rebaseerrors.StepExecutionError{
				Index:    i,
				Comment:  step.Comment,
				Command:  step.Command,
				ExitCode: exitCode,
				Output:   output,
				Err:      runErr,
			}
			e.state = StateFailed
			e.reportFailed(i, stepErr)
			return stepErr
		}

		if err := store.Save(p.Remaining(i)); err != nil {
			e.state = StateFailed
			e.reportFailed(i, err)
			return fmt.Errorf("step %d succeeded but the plan could not be checkpointed: %w", i+1, err)
		}
		splog.Info("OK")
		e.reportCompleted(i)
	}

	splog.Info("Plan executed, removing %s.", store.Path())
	if err := store.Remove(); err != nil {
		e.state = StateFailed
		return err
	}
	e.state = StateSucceeded
	return nil
}

func (e *Executor) reportStarted(i int, description string) {
	if e.opts.Reporter != nil {
		e.opts.Reporter.StepStarted(i, description)
	}
}

func (e *Executor) reportCompleted(i int) {
	if e.opts.Reporter != nil {
		e.opts.Reporter.StepCompleted(i)
	}
}

func (e *Executor) reportFailed(i int, err error) {
	if e.opts.Reporter != nil {
		e.opts.Reporter.StepFailed(i, err)
	}
}
