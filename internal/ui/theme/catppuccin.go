// Package theme holds the Catppuccin Mocha palette and the styles shared by
// the status, calendar and plugin tabs.
package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)

	// Week grid cells.
	Block   = lipgloss.NewStyle().Background(Surface1).Foreground(Text)
	Preview = lipgloss.NewStyle().Background(Lavender).Foreground(Base)
	Refused = lipgloss.NewStyle().Background(Red).Foreground(Base)
	Sleep   = lipgloss.NewStyle().Background(Surface0).Foreground(Subtext0)

	// Progress bars on the status tab.
	Filled = lipgloss.NewStyle().Foreground(Green)
	Empty  = Muted
)
