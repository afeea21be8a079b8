package fretboard

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrUnknownScale = errors.New("unknown scale type")
	ErrUnknownRoot  = errors.New("unknown root")
)

// Roots are the twelve selectable root names.
var Roots = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ScaleType names a supported scale or mode.
type ScaleType string

const (
	Major           ScaleType = "major"
	Minor           ScaleType = "minor"
	MajorPentatonic ScaleType = "major pentatonic"
	MinorPentatonic ScaleType = "minor pentatonic"
	Blues           ScaleType = "blues"
	Dorian          ScaleType = "dorian"
	Mixolydian      ScaleType = "mixolydian"
	Ionian          ScaleType = "ionian"
	Aeolian         ScaleType = "aeolian"
	Phrygian        ScaleType = "phrygian"
	Lydian          ScaleType = "lydian"
	Locrian         ScaleType = "locrian"
	HarmonicMinor   ScaleType = "harmonic minor"
)

// scaleTypes is the selection order shown to the user.
var scaleTypes = []ScaleType{
	Major, Minor, MajorPentatonic, MinorPentatonic, Blues, Dorian, Mixolydian,
	Ionian, Aeolian, Phrygian, Lydian, Locrian, HarmonicMinor,
}

// ScaleTypes returns the supported scale types in display order.
func ScaleTypes() []ScaleType {
	return append([]ScaleType(nil), scaleTypes...)
}

// ParseScaleType accepts any casing and spacing of a supported name.
func ParseScaleType(s string) (ScaleType, error) {
	norm := ScaleType(strings.Join(strings.Fields(strings.ToLower(s)), " "))
	for _, t := range scaleTypes {
		if t == norm {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScale, s)
}

// Label is the title-cased display name, e.g. "Major Pentatonic".
func (t ScaleType) Label() string {
	return cases.Title(language.English).String(string(t))
}

// NormalizeRoot upper-cases the letter of a root name, so "a" and "c#"
// become "A" and "C#". Anything else is left for ValidRoot to reject.
func NormalizeRoot(r string) string {
	r = strings.TrimSpace(r)
	if r == "" {
		return r
	}
	return strings.ToUpper(r[:1]) + r[1:]
}

// ValidRoot reports whether r is one of Roots.
func ValidRoot(r string) bool {
	for _, root := range Roots {
		if root == r {
			return true
		}
	}
	return false
}

// Scale is a resolved scale: its spelled members and their chroma set.
type Scale struct {
	Root  string
	Type  ScaleType
	Notes []string
	set   [12]bool
}

// Name is "<root> <type>", e.g. "A minor".
func (s Scale) Name() string { return s.Root + " " + string(s.Type) }

// Contains reports whether chroma c (0..11) belongs to the scale.
func (s Scale) Contains(c int) bool {
	if c < 0 || c > 11 {
		return false
	}
	return s.set[c]
}

// Chromas returns the member pitch classes in ascending order.
func (s Scale) Chromas() []int {
	var out []int
	for c, ok := range s.set {
		if ok {
			out = append(out, c)
		}
	}
	return out
}

type scaleKey struct {
	root string
	typ  ScaleType
}

// Resolver turns (root, scale type) into a Scale, caching each result.
type Resolver struct {
	theory Theory
	logger *slog.Logger

	mu    sync.Mutex
	cache map[scaleKey]Scale
}

// NewResolver returns a resolver backed by th. A nil logger uses slog.Default.
func NewResolver(th Theory, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{theory: th, logger: logger, cache: make(map[scaleKey]Scale)}
}

// Resolve returns the scale built on root. Unknown roots and scale types fail
// with ErrUnknownRoot and ErrUnknownScale.
func (r *Resolver) Resolve(root string, typ ScaleType) (Scale, error) {
	if !ValidRoot(root) {
		return Scale{}, fmt.Errorf("resolve %q: %w", root, ErrUnknownRoot)
	}
	typ, err := ParseScaleType(string(typ))
	if err != nil {
		return Scale{}, fmt.Errorf("resolve %s: %w", root, err)
	}
	key := scaleKey{root, typ}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.cache[key]; ok {
		return s, nil
	}

	notes, err := r.theory.ScaleNotes(root, string(typ))
	if err != nil {
		return Scale{}, fmt.Errorf("resolve %s %s: %w", root, typ, err)
	}
	s := Scale{Root: root, Type: typ, Notes: notes}
	for _, n := range notes {
		c, err := r.theory.Chroma(n)
		if err != nil {
			return Scale{}, fmt.Errorf("resolve %s %s: member %q: %w", root, typ, n, err)
		}
		s.set[c] = true
	}
	r.cache[key] = s
	r.logger.Debug("scale resolved", "scale", s.Name(), "notes", strings.Join(notes, " "))
	return s, nil
}
