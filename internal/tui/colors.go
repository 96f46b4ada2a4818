package tui

import "github.com/charmbracelet/lipgloss"

// ColorRed colors text red
func ColorRed(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("1")).
		Render(text)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(text)
}

// ColorCyan colors text cyan
func ColorCyan(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Render(text)
}

// ColorDim renders text in a muted grey
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(text)
}
