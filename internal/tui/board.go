package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chase3718/lou-fretboard/internal/fretboard"
	"github.com/chase3718/lou-fretboard/internal/theory"
)

// RenderOptions tweaks RenderBoard.
type RenderOptions struct {
	Cursor    *fretboard.Position // nil hides the cursor
	NoteNames bool                // label markers with pitch classes instead of degrees
}

// RenderBoard draws grid as text, highest string first, fret numbers below.
func RenderBoard(g *fretboard.Grid, st Styles, opts RenderOptions) string {
	var b strings.Builder
	for s, open := range g.Tuning {
		b.WriteString(st.Label.Render(fmt.Sprintf("%-3s", stringName(open))))
		for f := 0; f <= g.Frets; f++ {
			pos := fretboard.Position{String: s, Fret: f}
			c := renderCell(g, st, pos, opts)
			if opts.Cursor != nil && *opts.Cursor == pos {
				c = st.Cursor.Render(c)
			}
			b.WriteString(c)
			if f == 0 {
				b.WriteString(st.Nut.Render("‖"))
			} else {
				b.WriteString(st.Wire.Render("|"))
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("   ")
	for f := 0; f <= g.Frets; f++ {
		b.WriteString(st.FretNum.Render(fretMark(f)))
		b.WriteByte(' ')
	}
	return b.String()
}

func renderCell(g *fretboard.Grid, st Styles, pos fretboard.Position, opts RenderOptions) string {
	info, ok := g.At(pos)
	if !ok {
		return st.Wire.Render(strings.Repeat("─", cellWidth))
	}
	label := info.Degree
	if opts.NoteNames {
		label = info.PitchClass
	}
	return st.Marker(label, info.Style)
}

func stringName(open string) string {
	n, err := theory.ParseNote(open)
	if err != nil {
		return open
	}
	return n.PitchClass().String()
}

// fretMark numbers the inlaid frets and leaves the rest blank.
func fretMark(f int) string {
	switch f {
	case 0, 3, 5, 7, 9, 15:
		return fmt.Sprint(f)
	case 12:
		return "12••"
	}
	return ""
}

// renderMenu draws the open popup with the item under the menu cursor marked.
func renderMenu(st Styles, title string, items []string, selected int) string {
	lines := []string{st.Title.Render(title)}
	for i, it := range items {
		if i == selected {
			lines = append(lines, st.Selected.Render("› "+it))
			continue
		}
		lines = append(lines, st.Item.Render(it))
	}
	return st.Popup.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
