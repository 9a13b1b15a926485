package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#11111b")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Mauve    = lipgloss.Color("#cba6f7")
	Sky      = lipgloss.Color("#89dceb")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Red      = lipgloss.Color("#f38ba8")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Mauve)

	Title   = lipgloss.NewStyle().Foreground(Sky).Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(Subtext0)
	Hot     = lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	Good    = lipgloss.NewStyle().Foreground(Green)
	Bad     = lipgloss.NewStyle().Foreground(Red)
	Clock   = lipgloss.NewStyle().Foreground(Mauve).Bold(true)
	Bar     = lipgloss.NewStyle().Foreground(Mauve)
	BarRail = lipgloss.NewStyle().Foreground(Surface0)
)
