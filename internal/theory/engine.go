package theory

// Engine exposes the package through plain note-name strings, the shape the
// fretboard evaluator consumes.
type Engine struct{}

// Chroma returns the pitch class number of a note name.
func (Engine) Chroma(note string) (int, error) {
	n, err := ParseNote(note)
	if err != nil {
		return 0, err
	}
	return n.Chroma(), nil
}

// PitchClass strips the octave from a note name: "Bb2" becomes "Bb".
func (Engine) PitchClass(note string) (string, error) {
	n, err := ParseNote(note)
	if err != nil {
		return "", err
	}
	return n.PitchClass().String(), nil
}

// Distance returns the interval name between two notes, e.g. "3m".
func (Engine) Distance(from, to string) (string, error) {
	a, err := ParseNote(from)
	if err != nil {
		return "", err
	}
	b, err := ParseNote(to)
	if err != nil {
		return "", err
	}
	return Distance(a, b).String(), nil
}

// Transpose moves a note by a number of semitones using the conventional
// interval spelling.
func (Engine) Transpose(note string, semitones int) (string, error) {
	n, err := ParseNote(note)
	if err != nil {
		return "", err
	}
	return Transpose(n, FromSemitones(semitones)).String(), nil
}

// ScaleNotes spells the named scale on root.
func (Engine) ScaleNotes(root, scale string) ([]string, error) {
	r, err := ParseNote(root)
	if err != nil {
		return nil, err
	}
	notes, err := ScaleNotes(r, scale)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.String()
	}
	return out, nil
}
