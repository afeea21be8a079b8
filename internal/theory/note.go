// Package theory implements twelve-tone equal temperament pitch arithmetic on
// spelled notes: parsing, chroma, transposition, interval distance and scale
// lookup.
package theory

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidNote is returned when a note name cannot be parsed.
var ErrInvalidNote = errors.New("invalid note name")

const letters = "CDEFGAB"

// stepSemitones is the semitone offset of each natural letter above C.
var stepSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

// Note is a spelled pitch: a letter, an accidental and an optional octave.
// A Note without an octave is a pitch class.
type Note struct {
	step      int // 0..6, C..B
	alt       int // sharps > 0, flats < 0
	octave    int
	hasOctave bool
}

// ParseNote parses names such as "E4", "Bb", "C#3" or "F##2".
func ParseNote(s string) (Note, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Note{}, fmt.Errorf("%w: empty", ErrInvalidNote)
	}
	step := strings.IndexByte(letters, upper(s[0]))
	if step < 0 {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidNote, s)
	}
	n := Note{step: step}
	i := 1
accidentals:
	for ; i < len(s); i++ {
		switch s[i] {
		case '#':
			n.alt++
		case 'b':
			n.alt--
		case 'x':
			n.alt += 2
		default:
			break accidentals
		}
	}
	if rest := s[i:]; rest != "" {
		oct, err := strconv.Atoi(rest)
		if err != nil {
			return Note{}, fmt.Errorf("%w: %q", ErrInvalidNote, s)
		}
		n.octave = oct
		n.hasOctave = true
	}
	return n, nil
}

// MustParseNote is like ParseNote but panics on malformed input. It is meant
// for compile-time constants such as the fixed tuning.
func MustParseNote(s string) Note {
	n, err := ParseNote(s)
	if err != nil {
		panic(err)
	}
	return n
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// Letter returns the natural letter name.
func (n Note) Letter() string { return letters[n.step : n.step+1] }

// Accidental returns the signed number of sharps (positive) or flats.
func (n Note) Accidental() int { return n.alt }

// Octave returns the octave number and whether the note carries one.
func (n Note) Octave() (int, bool) { return n.octave, n.hasOctave }

// Chroma is the pitch class of the note, 0..11 with C = 0.
func (n Note) Chroma() int {
	return mod(stepSemitones[n.step]+n.alt, 12)
}

// PitchClass drops the octave.
func (n Note) PitchClass() Note {
	n.octave, n.hasOctave = 0, false
	return n
}

// Midi returns the MIDI key number (C4 = 60). Pitch classes have none.
func (n Note) Midi() (int, bool) {
	if !n.hasOctave {
		return 0, false
	}
	return n.height() + 12, true
}

// Frequency returns the equal-tempered frequency in Hz with A4 = 440.
func (n Note) Frequency() (float64, bool) {
	m, ok := n.Midi()
	if !ok {
		return 0, false
	}
	return 440 * math.Pow(2, float64(m-69)/12), true
}

func (n Note) String() string {
	var b strings.Builder
	b.WriteString(n.Letter())
	switch {
	case n.alt > 0:
		b.WriteString(strings.Repeat("#", n.alt))
	case n.alt < 0:
		b.WriteString(strings.Repeat("b", -n.alt))
	}
	if n.hasOctave {
		b.WriteString(strconv.Itoa(n.octave))
	}
	return b.String()
}

// height counts semitones above C0; absStep counts letter steps above C0.
func (n Note) height() int  { return stepSemitones[n.step] + n.alt + 12*n.octave }
func (n Note) absStep() int { return n.step + 7*n.octave }

func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
