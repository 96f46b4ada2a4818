package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func applyUpdates(t *testing.T, m PlanProgressModel, msgs ...tea.Msg) PlanProgressModel {
	t.Helper()
	var model tea.Model = m
	for _, msg := range msgs {
		model, _ = model.Update(msg)
	}
	result, ok := model.(PlanProgressModel)
	require.True(t, ok)
	return result
}

func TestPlanProgressModel(t *testing.T) {
	descriptions := []string{"Copying source", "Switching", "Merge changeset 10."}

	t.Run("starts with every step pending", func(t *testing.T) {
		m := NewPlanProgressModel(descriptions, nil, nil)
		for _, step := range m.Steps() {
			require.Equal(t, stepStatusPending, step.Status)
		}
		view := m.View()
		require.Contains(t, view, "1. Copying source pending")
		require.Contains(t, view, "3. Merge changeset 10. pending")
	})

	t.Run("tracks started and completed steps", func(t *testing.T) {
		m := applyUpdates(t, NewPlanProgressModel(descriptions, nil, nil),
			ProgressUpdate{Type: UpdateStarted, StepIndex: 0},
			ProgressUpdate{Type: UpdateCompleted, StepIndex: 0},
			ProgressUpdate{Type: UpdateStarted, StepIndex: 1},
		)

		steps := m.Steps()
		require.Equal(t, stepStatusDone, steps[0].Status)
		require.Equal(t, stepStatusRunning, steps[1].Status)
		require.Equal(t, stepStatusPending, steps[2].Status)
		require.Contains(t, m.View(), "✓ 1. Copying source done")
	})

	t.Run("failure is rendered with the first error line", func(t *testing.T) {
		m := applyUpdates(t, NewPlanProgressModel(descriptions, nil, nil),
			ProgressUpdate{Type: UpdateStarted, StepIndex: 0},
			ProgressUpdate{Type: UpdateFailed, StepIndex: 0, Error: errors.New("Non-zero exit code 1\nmore")},
		)

		view := m.View()
		require.Contains(t, view, "✗ 1. Copying source failed")
		require.Contains(t, view, "→ Non-zero exit code 1")
		require.NotContains(t, view, "more")
		require.Contains(t, view, "Completed: 0, Failed: 1")
	})

	t.Run("closed channel finishes the view", func(t *testing.T) {
		msgs := []tea.Msg{}
		for i := range descriptions {
			msgs = append(msgs,
				ProgressUpdate{Type: UpdateStarted, StepIndex: i},
				ProgressUpdate{Type: UpdateCompleted, StepIndex: i})
		}
		msgs = append(msgs, progressClosedMsg{})

		m := applyUpdates(t, NewPlanProgressModel(descriptions, nil, nil), msgs...)
		require.Contains(t, m.View(), "All 3 steps completed successfully")
	})

	t.Run("out of range updates are ignored", func(t *testing.T) {
		m := applyUpdates(t, NewPlanProgressModel(descriptions, nil, nil),
			ProgressUpdate{Type: UpdateStarted, StepIndex: 7},
			ProgressUpdate{Type: UpdateStarted, StepIndex: -1},
		)
		for _, step := range m.Steps() {
			require.Equal(t, stepStatusPending, step.Status)
		}
	})

	t.Run("ctrl+c calls the interrupt hook and quits", func(t *testing.T) {
		interrupted := false
		m := NewPlanProgressModel(descriptions, nil, func() { interrupted = true })

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.True(t, interrupted)
		require.NotNil(t, cmd)
		require.Contains(t, model.View(), "Interrupted")
	})
}
