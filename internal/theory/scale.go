package theory

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScale is returned for scale names missing from the dictionary.
var ErrUnknownScale = errors.New("unknown scale")

// scaleFormulas maps a lower-case scale name to its intervals above the root.
var scaleFormulas = map[string][]string{
	"major":            {"1P", "2M", "3M", "4P", "5P", "6M", "7M"},
	"ionian":           {"1P", "2M", "3M", "4P", "5P", "6M", "7M"},
	"minor":            {"1P", "2M", "3m", "4P", "5P", "6m", "7m"},
	"aeolian":          {"1P", "2M", "3m", "4P", "5P", "6m", "7m"},
	"major pentatonic": {"1P", "2M", "3M", "5P", "6M"},
	"minor pentatonic": {"1P", "3m", "4P", "5P", "7m"},
	"blues":            {"1P", "3m", "4P", "5d", "5P", "7m"},
	"dorian":           {"1P", "2M", "3m", "4P", "5P", "6M", "7m"},
	"phrygian":         {"1P", "2m", "3m", "4P", "5P", "6m", "7m"},
	"lydian":           {"1P", "2M", "3M", "4A", "5P", "6M", "7M"},
	"mixolydian":       {"1P", "2M", "3M", "4P", "5P", "6M", "7m"},
	"locrian":          {"1P", "2m", "3m", "4P", "5d", "6m", "7m"},
	"harmonic minor":   {"1P", "2M", "3m", "4P", "5P", "6m", "7M"},
}

// NormalizeScaleName lower-cases a name and collapses inner whitespace.
func NormalizeScaleName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// ScaleIntervals returns the formula of the named scale.
func ScaleIntervals(name string) ([]Interval, error) {
	formula, ok := scaleFormulas[NormalizeScaleName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScale, name)
	}
	out := make([]Interval, len(formula))
	for i, s := range formula {
		out[i] = MustParseInterval(s)
	}
	return out, nil
}

// ScaleNotes spells the named scale on root. The root keeps its octave if it
// has one.
func ScaleNotes(root Note, name string) ([]Note, error) {
	ivs, err := ScaleIntervals(name)
	if err != nil {
		return nil, err
	}
	notes := make([]Note, len(ivs))
	for i, iv := range ivs {
		notes[i] = Transpose(root, iv)
	}
	return notes, nil
}

// ScaleNames lists every scale in the dictionary, sorted.
func ScaleNames() []string {
	names := make([]string, 0, len(scaleFormulas))
	for name := range scaleFormulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
