package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/chase3718/lou-fretboard/internal/fretboard"
)

const cellWidth = 5

// Styles maps the marker palette onto terminal styles.
type Styles struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Nut       lipgloss.Style
	Wire      lipgloss.Style
	FretNum   lipgloss.Style
	Cursor    lipgloss.Style
	Popup     lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles derives the terminal styles from p.
func DefaultStyles(p fretboard.Palette) Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Highlight)),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Other)),
		Value:   lipgloss.NewStyle().Bold(true),
		Nut:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Seventh)),
		Wire:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6d6d6d")),
		FretNum: lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a")).Width(cellWidth).Align(lipgloss.Center),
		Cursor:  lipgloss.NewStyle().Reverse(true),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Fifth)).
			Padding(0, 1),
		Item:      lipgloss.NewStyle().PaddingLeft(2),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Highlight)).Bold(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
		Highlight: lipgloss.NewStyle().Bold(true).Underline(true),
	}
}

// Marker renders a marker label in its computed style. Highlighted markers
// are drawn bold and underlined since a terminal cell cannot grow.
func (s Styles) Marker(label string, st fretboard.Style) string {
	ms := lipgloss.NewStyle().
		Width(cellWidth).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(st.Color))
	if st.Border != fretboard.NoBorder {
		ms = ms.Inherit(s.Highlight)
	}
	return ms.Render(label)
}
