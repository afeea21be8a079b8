package fretboard

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrFretRange is returned for fret offsets outside [0, MaxFret].
var ErrFretRange = errors.New("fret out of range")

// Spelling selects the pitch-class name measured against the root.
type Spelling string

const (
	// SpellFretted uses the name produced by transposing the open string,
	// so a G# on the low E string stays G# even in C minor.
	SpellFretted Spelling = "fretted"
	// SpellScale renames the note to the scale member with the same
	// chroma, so the same fret reads Ab in C minor.
	SpellScale Spelling = "scale"
)

// ParseSpelling accepts "fretted" or "scale"; the empty string is fretted.
func ParseSpelling(s string) (Spelling, error) {
	switch Spelling(s) {
	case "", SpellFretted:
		return SpellFretted, nil
	case SpellScale:
		return SpellScale, nil
	}
	return "", fmt.Errorf("unknown spelling %q", s)
}

// NoteInfo describes one in-scale marker.
type NoteInfo struct {
	Position   Position
	Note       string // spelled note with octave, e.g. "Bb2"
	PitchClass string // e.g. "Bb"
	Interval   string // raw interval from the root, e.g. "7m"
	Degree     string // formatted label, e.g. "7"
	Style      Style
}

// Evaluator computes the marker for each fret.
type Evaluator struct {
	theory   Theory
	palette  Palette
	spelling Spelling
	logger   *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithPalette overrides DefaultPalette.
func WithPalette(p Palette) Option { return func(e *Evaluator) { e.palette = p } }

// WithSpelling overrides SpellFretted.
func WithSpelling(s Spelling) Option { return func(e *Evaluator) { e.spelling = s } }

// WithLogger sets the logger; the default is slog.Default.
func WithLogger(l *slog.Logger) Option { return func(e *Evaluator) { e.logger = l } }

// NewEvaluator returns an evaluator using th for all pitch arithmetic.
func NewEvaluator(th Theory, opts ...Option) *Evaluator {
	e := &Evaluator{
		theory:   th,
		palette:  DefaultPalette(),
		spelling: SpellFretted,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Palette returns the palette markers are styled with.
func (e *Evaluator) Palette() Palette { return e.palette }

// Evaluate returns the marker for the note fret semitones above open. The
// boolean is false when that note is not in scale. Errors only arise from a
// fret outside [0, MaxFret] or a note name the theory cannot parse.
func (e *Evaluator) Evaluate(open string, fret int, root string, scale Scale, highlight string) (NoteInfo, bool, error) {
	if fret < 0 || fret > MaxFret {
		return NoteInfo{}, false, fmt.Errorf("%w: %d", ErrFretRange, fret)
	}
	target, err := e.theory.Transpose(open, fret)
	if err != nil {
		return NoteInfo{}, false, fmt.Errorf("transpose %s by %d: %w", open, fret, err)
	}
	chroma, err := e.theory.Chroma(target)
	if err != nil {
		return NoteInfo{}, false, fmt.Errorf("chroma of %s: %w", target, err)
	}
	if !scale.Contains(chroma) {
		return NoteInfo{}, false, nil
	}

	pc, err := e.theory.PitchClass(target)
	if err != nil {
		return NoteInfo{}, false, fmt.Errorf("pitch class of %s: %w", target, err)
	}
	if e.spelling == SpellScale {
		pc = e.scaleSpelling(scale, chroma, pc)
	}
	raw, err := e.theory.Distance(root, pc)
	if err != nil {
		return NoteInfo{}, false, fmt.Errorf("distance %s to %s: %w", root, pc, err)
	}
	label := FormatDegree(raw)
	if !IsFormatted(raw) {
		e.logger.Debug("unformatted interval", "root", root, "note", pc, "interval", raw)
	}

	return NoteInfo{
		Note:       target,
		PitchClass: pc,
		Interval:   raw,
		Degree:     label,
		Style:      e.palette.StyleFor(label, highlight),
	}, true, nil
}

func (e *Evaluator) scaleSpelling(scale Scale, chroma int, fallback string) string {
	for _, n := range scale.Notes {
		if c, err := e.theory.Chroma(n); err == nil && c == chroma {
			return n
		}
	}
	return fallback
}
