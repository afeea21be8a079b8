package theory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidInterval is returned when an interval name cannot be parsed.
var ErrInvalidInterval = errors.New("invalid interval name")

// Interval is a spelled distance between two notes: a number of letter steps
// and a number of semitones, with a direction.
type Interval struct {
	steps int // letter steps, 0 for a unison
	semis int // semitones spanned in the direction of travel
	dir   int // +1 or -1
}

// semitone index -> interval number, the conventional spelling used by
// FromSemitones: 0 1P, 1 2m, 2 2M, 3 3m, 4 3M, 5 4P, 6 5d, 7 5P ...
var semitoneNumbers = [12]int{1, 2, 2, 3, 3, 4, 5, 5, 6, 6, 7, 7}

// FromSemitones returns the conventionally spelled interval of n semitones.
// Negative values descend.
func FromSemitones(n int) Interval {
	dir := 1
	if n < 0 {
		dir, n = -1, -n
	}
	steps := semitoneNumbers[n%12] - 1 + 7*(n/12)
	return Interval{steps: steps, semis: n, dir: dir}
}

// ParseInterval parses names such as "3M", "5d", "8P", "10m" or "-2M".
func ParseInterval(s string) (Interval, error) {
	orig := s
	s = strings.TrimSpace(s)
	dir := 1
	if strings.HasPrefix(s, "-") {
		dir, s = -1, s[1:]
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	num, err := strconv.Atoi(s[:i])
	if err != nil || num < 1 {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidInterval, orig)
	}
	q := s[i:]
	steps := num - 1
	simple := steps % 7
	base := stepSemitones[simple] + 12*(steps/7)
	offset, ok := qualityOffset(q, perfectable(simple))
	if !ok {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidInterval, orig)
	}
	return Interval{steps: steps, semis: base + offset, dir: dir}, nil
}

// MustParseInterval panics on malformed input.
func MustParseInterval(s string) Interval {
	iv, err := ParseInterval(s)
	if err != nil {
		panic(err)
	}
	return iv
}

func perfectable(simple int) bool { return simple == 0 || simple == 3 || simple == 4 }

func qualityOffset(q string, perfect bool) (int, bool) {
	switch {
	case q == "P" && perfect:
		return 0, true
	case q == "M" && !perfect:
		return 0, true
	case q == "m" && !perfect:
		return -1, true
	case q != "" && strings.Trim(q, "A") == "":
		return len(q), true
	case q != "" && strings.Trim(q, "d") == "":
		if perfect {
			return -len(q), true
		}
		return -len(q) - 1, true
	}
	return 0, false
}

// Number is the signed interval number: 1 for a unison, 8 for an octave,
// negative when descending.
func (iv Interval) Number() int { return iv.dir * (iv.steps + 1) }

// Semitones is the signed size of the interval.
func (iv Interval) Semitones() int { return iv.dir * iv.semis }

// Quality renders the quality letters: P, M, m, A, AA, d, dd...
func (iv Interval) Quality() string {
	simple := iv.steps % 7
	diff := iv.semis - (stepSemitones[simple] + 12*(iv.steps/7))
	if perfectable(simple) {
		switch {
		case diff == 0:
			return "P"
		case diff > 0:
			return strings.Repeat("A", diff)
		default:
			return strings.Repeat("d", -diff)
		}
	}
	switch {
	case diff == 0:
		return "M"
	case diff == -1:
		return "m"
	case diff > 0:
		return strings.Repeat("A", diff)
	default:
		return strings.Repeat("d", -diff-1)
	}
}

func (iv Interval) String() string {
	return strconv.Itoa(iv.Number()) + iv.Quality()
}

// Transpose moves n by iv, keeping the letter spelling implied by the
// interval: E2 transposed by 5d is Bb2, not A#2.
func Transpose(n Note, iv Interval) Note {
	step := n.absStep() + iv.dir*iv.steps
	height := n.height() + iv.dir*iv.semis
	out := Note{
		step:      mod(step, 7),
		octave:    floorDiv(step, 7),
		hasOctave: n.hasOctave,
	}
	out.alt = height - (stepSemitones[out.step] + 12*out.octave)
	if !n.hasOctave {
		out.octave = 0
	}
	return out
}

// Distance returns the interval from one note to another. When either note is
// a pitch class the result is the ascending simple interval (C to Bb is 7m);
// otherwise it is the signed, possibly compound, interval (C4 to C5 is 8P).
func Distance(from, to Note) Interval {
	if !from.hasOctave || !to.hasOctave {
		steps := mod(to.step-from.step, 7)
		semis := mod(to.Chroma()-from.Chroma(), 12)
		switch diff := semis - stepSemitones[steps]; {
		case diff > 6 && steps == 0:
			// same letter, lower pitch class: a diminished octave, F# to F is 8d
			steps += 7
		case diff > 6:
			semis -= 12
		case diff < -6:
			semis += 12
		}
		return Interval{steps: steps, semis: semis, dir: 1}
	}
	steps := to.absStep() - from.absStep()
	semis := to.height() - from.height()
	if steps < 0 || (steps == 0 && semis < 0) {
		return Interval{steps: -steps, semis: -semis, dir: -1}
	}
	return Interval{steps: steps, semis: semis, dir: 1}
}
