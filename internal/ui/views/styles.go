package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	SearchBox     lipgloss.Style
	SearchFocused lipgloss.Style
	Shortcut      lipgloss.Style
	MatchChar     lipgloss.Style
	ResultPath    lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	ExpandRow     lipgloss.Style
	RefHeader     lipgloss.Style
	TreeGroup     lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarn    lipgloss.Style
	StatusPending lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusBar     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:  lipgloss.NewStyle().Faint(true),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().Padding(0, 1),
		SearchBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		SearchFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Shortcut: lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("245")),
		MatchChar: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
		ResultPath: lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("245")),
		Highlight: lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")),
		SelectionBg: lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")),
		ExpandRow: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("39")),
		RefHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		TreeGroup: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		StatusWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		StatusPending: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}
