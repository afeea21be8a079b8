package fretboard

// degreeLabels maps raw interval names to the short degree labels drawn on
// each marker. Both sevenths read "7".
var degreeLabels = map[string]string{
	"1P": "R",
	"2M": "2",
	"3m": "m3",
	"3M": "3",
	"4P": "4",
	"4A": "#4",
	"5d": "b5",
	"5P": "5",
	"5A": "#5",
	"6M": "6",
	"7m": "7",
	"7M": "7",
	"8P": "R",
}

// FormatDegree returns the label for an interval name. Names outside the
// table come back unchanged.
func FormatDegree(interval string) string {
	if label, ok := degreeLabels[interval]; ok {
		return label
	}
	return interval
}

// IsFormatted reports whether FormatDegree has a label for interval.
func IsFormatted(interval string) bool {
	_, ok := degreeLabels[interval]
	return ok
}

// HighlightOption is one entry of the highlight menu.
type HighlightOption struct {
	Label string
	Value string
}

var highlights = []HighlightOption{
	{"None", ""},
	{"Root", "R"},
	{"2nd / 9th", "2"},
	{"3rd", "3"},
	{"4th / 11th", "4"},
	{"5th", "5"},
	{"6th / 13th", "6"},
	{"7th", "7"},
}

// Highlights returns the highlight menu in display order.
func Highlights() []HighlightOption {
	return append([]HighlightOption(nil), highlights...)
}

// ValidHighlight reports whether v is a value from Highlights.
func ValidHighlight(v string) bool {
	for _, h := range highlights {
		if h.Value == v {
			return true
		}
	}
	return false
}
