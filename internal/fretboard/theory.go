// Package fretboard maps a root and scale onto a six-string fretboard: which
// fretted notes belong to the scale, which degree each one is, and how it is
// drawn.
package fretboard

import "github.com/chase3718/lou-fretboard/internal/theory"

// Theory is the music-theory collaborator the evaluator depends on. Notes and
// intervals travel as names ("Bb2", "3m") so implementations stay swappable.
type Theory interface {
	Chroma(note string) (int, error)
	PitchClass(note string) (string, error)
	Distance(from, to string) (string, error)
	Transpose(note string, semitones int) (string, error)
	ScaleNotes(root, scale string) ([]string, error)
}

// DefaultTheory is the in-repo twelve-tone engine.
func DefaultTheory() Theory { return theory.Engine{} }
