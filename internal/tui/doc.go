// Package tui provides the terminal user interface for svn-rebase.
//
// It handles:
//   - Structured logging with verbosity levels (Splog)
//   - Rotating file logs (using lumberjack)
//   - Confirmation prompts (using survey)
//   - The plan execution progress view (using bubbletea and lipgloss)
package tui
