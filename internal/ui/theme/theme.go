package theme

import "github.com/charmbracelet/lipgloss"

var (
	Paper  = lipgloss.Color("#ffffff")
	Ink    = lipgloss.Color("#1f1f1f")
	Pencil = lipgloss.Color("#8a8a8a")
	Red    = lipgloss.Color("#d64545")
	Shadow = lipgloss.Color("#e6e6e6")

	Screen = lipgloss.NewStyle().
		Foreground(Ink).
		Padding(1, 2)

	Title     = lipgloss.NewStyle().Foreground(Ink).Bold(true)
	Underline = lipgloss.NewStyle().Foreground(Ink)
	Counter   = lipgloss.NewStyle().Foreground(Ink).Bold(true)
	Muted     = lipgloss.NewStyle().Foreground(Pencil)
	Danger    = lipgloss.NewStyle().Foreground(Red).Bold(true)

	Button = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Ink).
		Padding(0, 3)

	Modal = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Red).
		Foreground(Ink).
		Padding(1, 2)

	StatusBar = lipgloss.NewStyle().Background(Shadow).Foreground(Ink)
)
