package top

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#7C3AED") // purple
	secondaryColor = lipgloss.Color("#10B981") // green
	mutedColor     = lipgloss.Color("#6B7280") // gray
	dangerColor    = lipgloss.Color("#EF4444") // red
	warnColor      = lipgloss.Color("#F59E0B") // yellow

	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 1)

	runningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor)

	idleStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	promptBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(warnColor).
				Padding(0, 1)

	statusOkStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(dangerColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(1, 0, 0, 0)
)
