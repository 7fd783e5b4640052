package columns

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and glyphs for the built-in columns using lipgloss.
type Theme struct {
	Description lipgloss.Style
	Percentage  lipgloss.Style
	Time        lipgloss.Style
	Speed       lipgloss.Style
	BarDone     lipgloss.Style
	BarRest     lipgloss.Style
	BarPulse    lipgloss.Style
	Finished    lipgloss.Style

	BarDoneGlyph string
	BarRestGlyph string

	SpinnerFrames []string
}

func DefaultTheme() *Theme {
	t := &Theme{
		Description: lipgloss.NewStyle(),
		Percentage:  lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		Time:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Speed:       lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		BarDone:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		BarRest:     lipgloss.NewStyle().Faint(true),
		BarPulse:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Finished:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),

		BarDoneGlyph: "█",
		BarRestGlyph: "░",

		SpinnerFrames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}

	return t
}
