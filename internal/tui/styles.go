package tui

import "github.com/charmbracelet/lipgloss"

// Warm coffee-shop palette
var (
	ColorFgPrimary   = lipgloss.Color("#E8DCC8")
	ColorFgSecondary = lipgloss.Color("#A89B85")
	ColorFgMuted     = lipgloss.Color("#6E6356")

	ColorCrema  = lipgloss.Color("#D4A95B")
	ColorRoast  = lipgloss.Color("#8C5A3C")
	ColorGreen  = lipgloss.Color("#9BB167")
	ColorRed    = lipgloss.Color("#C76B5B")
	ColorBorder = lipgloss.Color("#4A4036")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorCrema).
			Bold(true).
			PaddingLeft(1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	PhaseTitleStyle = lipgloss.NewStyle().
			Foreground(ColorCrema).
			Bold(true)

	PhaseDescStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary)

	PhaseDoneStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	PhasePendingStyle = lipgloss.NewStyle().
				Foreground(ColorFgMuted)

	TimerStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Bold(true)

	TimerOverrunStyle = lipgloss.NewStyle().
				Foreground(ColorRed).
				Bold(true)

	ProgressFilledStyle = lipgloss.NewStyle().
				Foreground(ColorCrema)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(ColorFgMuted)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorCrema).
				Bold(true)

	ItemStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)
)

// renderProgressBar draws a fixed-width bar for the session progress
// percentage.
func renderProgressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += ProgressFilledStyle.Render("█")
		} else {
			bar += ProgressEmptyStyle.Render("░")
		}
	}
	return bar
}
