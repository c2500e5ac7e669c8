package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style of the shopping list.
type Theme struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Onetime  lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
}

// DefaultTheme is the default theme.
var DefaultTheme = Theme{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#2E8B57")).
		MarginBottom(1),
	Selected: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		Background(lipgloss.Color("#2E8B57")),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Onetime: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")).
		Italic(true),
	Success: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
}
