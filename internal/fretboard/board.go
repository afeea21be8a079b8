package fretboard

import "fmt"

type cell struct {
	note string
	info NoteInfo
	in   bool
}

// Grid is a fully evaluated fretboard for one scale and highlight.
type Grid struct {
	Tuning    Tuning
	Frets     int // highest fret evaluated
	Scale     Scale
	Highlight string

	cells [NumStrings][]cell
}

// Board evaluates frets 0..frets on every string. frets is clamped to
// [0, MaxFret].
func (e *Evaluator) Board(tuning Tuning, frets int, scale Scale, highlight string) (*Grid, error) {
	frets = ClampFret(frets)
	g := &Grid{Tuning: tuning, Frets: frets, Scale: scale, Highlight: highlight}
	for s, open := range tuning {
		row := make([]cell, frets+1)
		for f := range row {
			note, err := e.theory.Transpose(open, f)
			if err != nil {
				return nil, fmt.Errorf("string %d fret %d: %w", s, f, err)
			}
			info, in, err := e.Evaluate(open, f, scale.Root, scale, highlight)
			if err != nil {
				return nil, fmt.Errorf("string %d fret %d: %w", s, f, err)
			}
			info.Position = Position{String: s, Fret: f}
			row[f] = cell{note: note, info: info, in: in}
		}
		g.cells[s] = row
	}
	return g, nil
}

func (g *Grid) cell(p Position) (cell, bool) {
	if p.String < 0 || p.String >= NumStrings || p.Fret < 0 || p.Fret > g.Frets {
		return cell{}, false
	}
	return g.cells[p.String][p.Fret], true
}

// At returns the marker at p, or false when the note is not in scale or p is
// off the board.
func (g *Grid) At(p Position) (NoteInfo, bool) {
	c, ok := g.cell(p)
	if !ok || !c.in {
		return NoteInfo{}, false
	}
	return c.info, true
}

// NoteAt returns the spelled note at p whether or not it is in scale.
func (g *Grid) NoteAt(p Position) (string, bool) {
	c, ok := g.cell(p)
	if !ok {
		return "", false
	}
	return c.note, true
}

// Markers returns every in-scale marker, string by string.
func (g *Grid) Markers() []NoteInfo {
	var out []NoteInfo
	for _, row := range g.cells {
		for _, c := range row {
			if c.in {
				out = append(out, c.info)
			}
		}
	}
	return out
}
