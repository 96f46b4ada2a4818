package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	stepStatusPending = "pending"
	stepStatusRunning = "running"
	stepStatusDone    = "done"
	stepStatusError   = "error"
)

// PlanStepItem represents a step of the plan being executed
type PlanStepItem struct {
	Description string
	Status      string // "pending", "running", "done", "error"
	Error       error
}

// progressClosedMsg is sent when the update channel is closed
type progressClosedMsg struct{}

// PlanProgressModel is the bubbletea model for plan execution progress
type PlanProgressModel struct {
	steps       []PlanStepItem
	spinner     spinner.Model
	done        bool
	quitting    bool
	styles      progressStyles
	updates     <-chan ProgressUpdate
	onInterrupt func()
}

type progressStyles struct {
	spinnerStyle lipgloss.Style
	doneStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	dimStyle     lipgloss.Style
}

// NewPlanProgressModel creates a progress model with one line per step
func NewPlanProgressModel(stepDescriptions []string, updates <-chan ProgressUpdate, onInterrupt func()) PlanProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	steps := make([]PlanStepItem, len(stepDescriptions))
	for i, desc := range stepDescriptions {
		steps[i] = PlanStepItem{Description: desc, Status: stepStatusPending}
	}

	return PlanProgressModel{
		steps:       steps,
		spinner:     s,
		updates:     updates,
		onInterrupt: onInterrupt,
		styles: progressStyles{
			spinnerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
			doneStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			dimStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

// waitForUpdate blocks on the update channel and turns the next update into a message
func waitForUpdate(updates <-chan ProgressUpdate) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return progressClosedMsg{}
		}
		return update
	}
}

// Init initializes the bubbletea model
func (m PlanProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForUpdate(m.updates))
}

// Update handles message updates for the bubbletea model
func (m PlanProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// The running command is left to finish; execution stops before the next step.
			m.quitting = true
			if m.onInterrupt != nil {
				m.onInterrupt()
			}
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressUpdate:
		if msg.StepIndex >= 0 && msg.StepIndex < len(m.steps) {
			step := &m.steps[msg.StepIndex]
			switch msg.Type {
			case UpdateStarted:
				step.Status = stepStatusRunning
			case UpdateCompleted:
				step.Status = stepStatusDone
			case UpdateFailed:
				step.Status = stepStatusError
				step.Error = msg.Error
				m.done = true
			}
		}
		return m, waitForUpdate(m.updates)

	case progressClosedMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// Steps returns the current state of every step
func (m PlanProgressModel) Steps() []PlanStepItem {
	return m.steps
}

// View renders the TUI
func (m PlanProgressModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("Rebase Progress:\n")
	b.WriteString("\n")

	for i, step := range m.steps {
		var icon, status string
		switch step.Status {
		case stepStatusPending:
			icon = m.styles.dimStyle.Render("○")
			status = m.styles.dimStyle.Render("pending")
		case stepStatusRunning:
			icon = m.spinner.View()
			status = m.styles.spinnerStyle.Render("running...")
		case stepStatusDone:
			icon = m.styles.doneStyle.Render("✓")
			status = m.styles.doneStyle.Render("done")
		case stepStatusError:
			icon = m.styles.errorStyle.Render("✗")
			status = m.styles.errorStyle.Render("failed")
		}

		line := fmt.Sprintf("  %s %d. %s %s", icon, i+1, step.Description, status)
		if step.Status == stepStatusError && step.Error != nil {
			line += " " + m.styles.errorStyle.Render("→ "+firstLine(step.Error.Error()))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.done {
		completed, failed := 0, 0
		for _, step := range m.steps {
			switch step.Status {
			case stepStatusDone:
				completed++
			case stepStatusError:
				failed++
			}
		}
		b.WriteString("\n")
		switch {
		case failed > 0:
			b.WriteString(m.styles.errorStyle.Render(fmt.Sprintf("Completed: %d, Failed: %d", completed, failed)))
		case completed == len(m.steps):
			b.WriteString(m.styles.doneStyle.Render(fmt.Sprintf("✓ All %d steps completed successfully", completed)))
		default:
			b.WriteString(m.styles.dimStyle.Render(fmt.Sprintf("Stopped after %d of %d steps", completed, len(m.steps))))
		}
		b.WriteString("\n")
	} else if m.quitting {
		b.WriteString("\n")
		b.WriteString(m.styles.dimStyle.Render("Interrupted, stopping after the current step..."))
		b.WriteString("\n")
	}

	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// RunPlanProgressTUI runs the progress view until the update channel is closed
// or the user interrupts. onInterrupt is called on ctrl+c.
func RunPlanProgressTUI(stepDescriptions []string, updates <-chan ProgressUpdate, onInterrupt func()) error {
	m := NewPlanProgressModel(stepDescriptions, updates, onInterrupt)
	program := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	_, err := program.Run()
	return err
}
