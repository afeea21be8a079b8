package fretboard

import "strings"

// Style is how a marker is drawn.
type Style struct {
	Color  string  // hex background
	Scale  float64 // size factor
	Z      int     // stacking order
	Border string  // CSS-style border, "none" when absent
}

// Palette holds the marker colors.
type Palette struct {
	Root      string `yaml:"root"`
	Third     string `yaml:"third"`
	Fifth     string `yaml:"fifth"`
	Seventh   string `yaml:"seventh"`
	Other     string `yaml:"other"`
	Highlight string `yaml:"highlight"`
}

// DefaultPalette is the brown/tan palette of the fretboard page.
func DefaultPalette() Palette {
	return Palette{
		Root:      "#3e2723",
		Third:     "#8d6e63",
		Fifth:     "#a1887f",
		Seventh:   "#d2b48c",
		Other:     "#bcaaa4",
		Highlight: "#ff7043",
	}
}

const (
	baseScale      = 1.0
	baseZ          = 20
	highlightScale = 1.2
	highlightZ     = 40

	NoBorder        = "none"
	HighlightBorder = "2px solid #fff"
)

// BaseColor picks the color for a degree label. Matches are checked in order:
// exact root, then any label containing 3, 5 and 7.
func (p Palette) BaseColor(label string) string {
	switch {
	case label == "R":
		return p.Root
	case strings.Contains(label, "3"):
		return p.Third
	case strings.Contains(label, "5"):
		return p.Fifth
	case strings.Contains(label, "7"):
		return p.Seventh
	}
	return p.Other
}

// StyleFor returns the style of a marker with the given label. A non-empty
// highlight contained in the label switches to the highlight style.
func (p Palette) StyleFor(label, highlight string) Style {
	if Highlighted(label, highlight) {
		return Style{Color: p.Highlight, Scale: highlightScale, Z: highlightZ, Border: HighlightBorder}
	}
	return Style{Color: p.BaseColor(label), Scale: baseScale, Z: baseZ, Border: NoBorder}
}

// Highlighted reports whether label matches the highlight filter.
func Highlighted(label, highlight string) bool {
	return highlight != "" && strings.Contains(label, highlight)
}
