package fretboard

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/chase3718/lou-fretboard/internal/theory"
)

const (
	NumStrings = 6
	MaxFret    = 15 // highest fret; fret 0 is the open string
)

// Tuning lists the open strings from the highest (index 0) to the lowest.
type Tuning [NumStrings]string

// StandardTuning is E4 B3 G3 D3 A2 E2.
var StandardTuning = Tuning{"E4", "B3", "G3", "D3", "A2", "E2"}

func init() {
	for _, n := range StandardTuning {
		theory.MustParseNote(n)
	}
}

// Position addresses one fret on one string.
type Position struct {
	String int // 0..NumStrings-1, 0 = highest string
	Fret   int // 0..MaxFret
}

// Valid reports whether p lies on the board.
func (p Position) Valid() bool {
	return p.String >= 0 && p.String < NumStrings && p.Fret >= 0 && p.Fret <= MaxFret
}

// ClampFret bounds a fret offset to [0, MaxFret].
func ClampFret(f int) int {
	switch {
	case f < 0:
		return 0
	case f > MaxFret:
		return MaxFret
	}
	return f
}

// Positions lists every fret that sounds note (which must carry an octave),
// lowest fret first and, on equal frets, the lower string first.
func (t Tuning) Positions(note string) ([]Position, error) {
	n, err := theory.ParseNote(note)
	if err != nil {
		return nil, err
	}
	key, ok := n.Midi()
	if !ok {
		return nil, fmt.Errorf("%w: %q has no octave", theory.ErrInvalidNote, note)
	}
	var out []Position
	for s, open := range t {
		o, _ := theory.MustParseNote(open).Midi()
		if f := key - o; f >= 0 && f <= MaxFret {
			out = append(out, Position{String: s, Fret: f})
		}
	}
	slices.SortFunc(out, func(a, b Position) int {
		if a.Fret != b.Fret {
			return cmp.Compare(a.Fret, b.Fret)
		}
		return cmp.Compare(b.String, a.String)
	})
	return out, nil
}
