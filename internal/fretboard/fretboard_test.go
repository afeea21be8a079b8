package fretboard

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chase3718/lou-fretboard/internal/theory"
)

// countingTheory wraps the default engine and counts scale lookups.
type countingTheory struct {
	Theory
	scaleCalls int
}

func (c *countingTheory) ScaleNotes(root, scale string) ([]string, error) {
	c.scaleCalls++
	return c.Theory.ScaleNotes(root, scale)
}

func mustResolve(t *testing.T, root string, typ ScaleType) Scale {
	t.Helper()
	s, err := NewResolver(DefaultTheory(), nil).Resolve(root, typ)
	require.NoError(t, err)
	return s
}

func TestResolve_ChromaSets(t *testing.T) {
	tests := []struct {
		typ  ScaleType
		want []int
	}{
		{Major, []int{0, 2, 4, 5, 7, 9, 11}},
		{Minor, []int{0, 2, 3, 5, 7, 8, 10}},
		{MajorPentatonic, []int{0, 2, 4, 7, 9}},
		{MinorPentatonic, []int{0, 3, 5, 7, 10}},
		{Blues, []int{0, 3, 5, 6, 7, 10}},
		{Dorian, []int{0, 2, 3, 5, 7, 9, 10}},
		{Mixolydian, []int{0, 2, 4, 5, 7, 9, 10}},
		{Ionian, []int{0, 2, 4, 5, 7, 9, 11}},
		{Aeolian, []int{0, 2, 3, 5, 7, 8, 10}},
		{Phrygian, []int{0, 1, 3, 5, 7, 8, 10}},
		{Lydian, []int{0, 2, 4, 6, 7, 9, 11}},
		{Locrian, []int{0, 1, 3, 5, 6, 8, 10}},
		{HarmonicMinor, []int{0, 2, 3, 5, 7, 8, 11}},
	}
	require.Len(t, tests, len(ScaleTypes()))
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			s := mustResolve(t, "C", tt.typ)
			assert.Equal(t, tt.want, s.Chromas())
		})
	}
}

func TestResolve_TransposedRoot(t *testing.T) {
	s := mustResolve(t, "A", Minor)
	assert.Equal(t, []int{0, 2, 4, 5, 7, 9, 11}, s.Chromas())
	assert.Equal(t, "A minor", s.Name())

	s = mustResolve(t, "F#", MinorPentatonic)
	assert.Equal(t, []int{1, 4, 6, 9, 11}, s.Chromas())
}

func TestResolve_Errors(t *testing.T) {
	r := NewResolver(DefaultTheory(), nil)

	_, err := r.Resolve("C", "phrygian dominant")
	assert.ErrorIs(t, err, ErrUnknownScale)

	_, err = r.Resolve("Db", Major)
	assert.ErrorIs(t, err, ErrUnknownRoot)
}

func TestResolve_Memoized(t *testing.T) {
	th := &countingTheory{Theory: DefaultTheory()}
	r := NewResolver(th, nil)

	a, err := r.Resolve("D", Dorian)
	require.NoError(t, err)
	b, err := r.Resolve("D", "  DORIAN ")
	require.NoError(t, err)
	assert.Equal(t, 1, th.scaleCalls)
	assert.Equal(t, a.Chromas(), b.Chromas())

	_, err = r.Resolve("E", Dorian)
	require.NoError(t, err)
	assert.Equal(t, 2, th.scaleCalls)
}

func TestParseScaleType(t *testing.T) {
	typ, err := ParseScaleType("Major  Pentatonic")
	require.NoError(t, err)
	assert.Equal(t, MajorPentatonic, typ)
	assert.Equal(t, "Major Pentatonic", typ.Label())

	_, err = ParseScaleType("bebop")
	assert.ErrorIs(t, err, ErrUnknownScale)
}

func TestFormatDegree(t *testing.T) {
	table := map[string]string{
		"1P": "R", "2M": "2", "3m": "m3", "3M": "3", "4P": "4", "4A": "#4", "5d": "b5",
		"5P": "5", "5A": "#5", "6M": "6", "7m": "7", "7M": "7", "8P": "R",
	}
	for raw, want := range table {
		assert.Equal(t, want, FormatDegree(raw), raw)
		assert.True(t, IsFormatted(raw))
	}
	for _, raw := range []string{"6m", "2m", "9M", "2d", ""} {
		assert.Equal(t, raw, FormatDegree(raw))
		assert.False(t, IsFormatted(raw))
	}
}

func TestRootAlwaysFormatsAsR(t *testing.T) {
	th := DefaultTheory()
	for _, root := range Roots {
		raw, err := th.Distance(root, root)
		require.NoError(t, err)
		assert.Equal(t, "R", FormatDegree(raw), root)
	}
}

func TestPalette_StyleFor(t *testing.T) {
	p := DefaultPalette()
	tests := []struct {
		label, highlight string
		want             Style
	}{
		{"R", "", Style{"#3e2723", 1, 20, "none"}},
		{"m3", "", Style{"#8d6e63", 1, 20, "none"}},
		{"b5", "", Style{"#a1887f", 1, 20, "none"}},
		{"7", "", Style{"#d2b48c", 1, 20, "none"}},
		{"6", "", Style{"#bcaaa4", 1, 20, "none"}},
		{"#4", "5", Style{"#bcaaa4", 1, 20, "none"}},
		{"m3", "3", Style{"#ff7043", 1.2, 40, "2px solid #fff"}},
		{"R", "R", Style{"#ff7043", 1.2, 40, "2px solid #fff"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.StyleFor(tt.label, tt.highlight), "%s/%s", tt.label, tt.highlight)
	}
}

func TestEvaluate_AMinorRootOnLowE(t *testing.T) {
	e := NewEvaluator(DefaultTheory())
	scale := mustResolve(t, "A", Minor)

	info, ok, err := e.Evaluate("E2", 5, "A", scale, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "A2", info.Note)
	assert.Equal(t, "R", info.Degree)
	assert.Equal(t, Style{Color: "#3e2723", Scale: 1, Z: 20, Border: "none"}, info.Style)
}

func TestEvaluate_OutOfScaleIsAbsent(t *testing.T) {
	e := NewEvaluator(DefaultTheory())
	scale := mustResolve(t, "C", MajorPentatonic)

	grid, err := e.Board(StandardTuning, MaxFret, scale, "")
	require.NoError(t, err)

	th := DefaultTheory()
	sharps := 0
	for s := 0; s < NumStrings; s++ {
		for f := 0; f <= MaxFret; f++ {
			p := Position{String: s, Fret: f}
			note, ok := grid.NoteAt(p)
			require.True(t, ok)
			if c, _ := th.Chroma(note); c == 6 {
				sharps++
				_, in := grid.At(p)
				assert.False(t, in, "F# at %+v should be absent", p)
			}
		}
	}
	assert.NotZero(t, sharps)
}

func TestEvaluate_Boundaries(t *testing.T) {
	e := NewEvaluator(DefaultTheory())
	scale := mustResolve(t, "C", Major)

	info, ok, err := e.Evaluate("E4", 0, "C", scale, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "E4", info.Note)
	assert.Equal(t, "3", info.Degree)

	info, ok, err = e.Evaluate("E2", MaxFret, "C", scale, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "G3", info.Note)
	assert.Equal(t, "5", info.Degree)

	_, _, err = e.Evaluate("E2", MaxFret+1, "C", scale, "")
	assert.ErrorIs(t, err, ErrFretRange)
	_, _, err = e.Evaluate("E2", -1, "C", scale, "")
	assert.ErrorIs(t, err, ErrFretRange)
}

func TestEvaluate_Idempotent(t *testing.T) {
	e := NewEvaluator(DefaultTheory())
	scale := mustResolve(t, "G", Blues)

	a, err := e.Board(StandardTuning, MaxFret, scale, "5")
	require.NoError(t, err)
	b, err := e.Board(StandardTuning, MaxFret, scale, "5")
	require.NoError(t, err)
	if diff := cmp.Diff(a.Markers(), b.Markers()); diff != "" {
		t.Errorf("board changed between evaluations (-first +second):\n%s", diff)
	}
}

func TestEvaluate_HighlightThirds(t *testing.T) {
	e := NewEvaluator(DefaultTheory())
	for _, root := range []string{"A", "C"} {
		scale := mustResolve(t, root, Minor)
		grid, err := e.Board(StandardTuning, MaxFret, scale, "3")
		require.NoError(t, err)

		highlighted := 0
		for _, m := range grid.Markers() {
			want := strings.Contains(m.Degree, "3")
			assert.Equal(t, want, m.Style.Color == "#ff7043", "%s %+v", m.Degree, m.Position)
			if want {
				highlighted++
				assert.Equal(t, 1.2, m.Style.Scale)
				assert.Equal(t, 40, m.Style.Z)
			}
		}
		assert.NotZero(t, highlighted, root)
	}

	grid, err := e.Board(StandardTuning, MaxFret, mustResolve(t, "A", Minor), "3")
	require.NoError(t, err)
	for _, m := range grid.Markers() {
		if m.PitchClass == "C" {
			assert.Equal(t, "m3", m.Degree)
		}
	}
}

func TestEvaluate_DegreeDependsOnPitchOnly(t *testing.T) {
	e := NewEvaluator(DefaultTheory())
	grid, err := e.Board(StandardTuning, MaxFret, mustResolve(t, "D", Mixolydian), "")
	require.NoError(t, err)

	seen := map[string]string{}
	for _, m := range grid.Markers() {
		if prev, ok := seen[m.PitchClass]; ok {
			assert.Equal(t, prev, m.Degree, m.PitchClass)
		}
		seen[m.PitchClass] = m.Degree
	}
	assert.Equal(t, "R", seen["D"])
	assert.Equal(t, "7", seen["C"])
}

func TestEvaluate_Spelling(t *testing.T) {
	scale := mustResolve(t, "C", Minor)

	fretted := NewEvaluator(DefaultTheory())
	info, ok, err := fretted.Evaluate("E2", 4, "C", scale, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "G#", info.PitchClass)
	assert.Equal(t, "#5", info.Degree)

	byScale := NewEvaluator(DefaultTheory(), WithSpelling(SpellScale))
	info, ok, err = byScale.Evaluate("E2", 4, "C", scale, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ab", info.PitchClass)
	assert.Equal(t, "6m", info.Degree)

	sharpRoot := mustResolve(t, "A#", Major)
	info, _, err = fretted.Evaluate("E2", 6, "A#", sharpRoot, "")
	require.NoError(t, err)
	assert.Equal(t, "2d", info.Degree)
	info, _, err = byScale.Evaluate("E2", 6, "A#", sharpRoot, "")
	require.NoError(t, err)
	assert.Equal(t, "R", info.Degree)

	// F on the high E string is in F# major as E#.
	fSharp := mustResolve(t, "F#", Major)
	info, ok, err = fretted.Evaluate("E4", 1, "F#", fSharp, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "F4", info.Note)
	assert.Equal(t, "8d", info.Interval)
	assert.Equal(t, "8d", info.Degree)
	info, _, err = byScale.Evaluate("E4", 1, "F#", fSharp, "")
	require.NoError(t, err)
	assert.Equal(t, "E#", info.PitchClass)
	assert.Equal(t, "7M", info.Interval)
	assert.Equal(t, "7", info.Degree)
}

func TestBoard_ClampsAndPositions(t *testing.T) {
	e := NewEvaluator(DefaultTheory())
	grid, err := e.Board(StandardTuning, 99, mustResolve(t, "E", MinorPentatonic), "")
	require.NoError(t, err)
	assert.Equal(t, MaxFret, grid.Frets)

	info, ok := grid.At(Position{String: 5, Fret: 0})
	require.True(t, ok)
	assert.Equal(t, Position{String: 5, Fret: 0}, info.Position)
	assert.Equal(t, "E2", info.Note)

	_, ok = grid.NoteAt(Position{String: 6, Fret: 0})
	assert.False(t, ok)
	_, ok = grid.At(Position{String: 0, Fret: MaxFret + 1})
	assert.False(t, ok)
}

func TestParseSpelling(t *testing.T) {
	s, err := ParseSpelling("")
	require.NoError(t, err)
	assert.Equal(t, SpellFretted, s)
	s, err = ParseSpelling("scale")
	require.NoError(t, err)
	assert.Equal(t, SpellScale, s)
	_, err = ParseSpelling("enharmonic")
	assert.Error(t, err)
}

func TestNormalizeRoot(t *testing.T) {
	for in, want := range map[string]string{"a": "A", "c#": "C#", " G ": "G", "A#": "A#", "": ""} {
		assert.Equal(t, want, NormalizeRoot(in), in)
	}
	assert.False(t, ValidRoot(NormalizeRoot("bb")))
}

func TestTuning_Positions(t *testing.T) {
	got, err := StandardTuning.Positions("A2")
	require.NoError(t, err)
	assert.Equal(t, []Position{{String: 4, Fret: 0}, {String: 5, Fret: 5}}, got)

	got, err = StandardTuning.Positions("E4")
	require.NoError(t, err)
	assert.Equal(t, []Position{{0, 0}, {1, 5}, {2, 9}, {3, 14}}, got)

	got, err = StandardTuning.Positions("D2")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = StandardTuning.Positions("A")
	assert.ErrorIs(t, err, theory.ErrInvalidNote)
}
