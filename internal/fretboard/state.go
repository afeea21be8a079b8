package fretboard

import (
	"errors"
	"fmt"
)

// ErrUnknownHighlight is returned for highlight values outside Highlights.
var ErrUnknownHighlight = errors.New("unknown highlight target")

// Popup identifies the selection menu currently open.
type Popup int

const (
	PopupNone Popup = iota
	PopupRoot
	PopupScale
	PopupHighlight
)

func (p Popup) String() string {
	switch p {
	case PopupRoot:
		return "root"
	case PopupScale:
		return "scale"
	case PopupHighlight:
		return "highlight"
	}
	return "none"
}

// State is everything the user has selected. It is a value: every transition
// returns a new State and leaves the receiver untouched.
type State struct {
	Root      string
	Scale     ScaleType
	Highlight string
	Popup     Popup
	Cursor    Position
}

// DefaultState is C major, nothing highlighted, no popup, cursor on the open
// high E string.
func DefaultState() State {
	return State{Root: "C", Scale: Major}
}

// SetRoot selects a root and closes any popup.
func (s State) SetRoot(root string) (State, error) {
	if !ValidRoot(root) {
		return s, fmt.Errorf("%w: %q", ErrUnknownRoot, root)
	}
	s.Root = root
	s.Popup = PopupNone
	return s, nil
}

// SetScaleType selects a scale type and closes any popup.
func (s State) SetScaleType(t ScaleType) (State, error) {
	t, err := ParseScaleType(string(t))
	if err != nil {
		return s, err
	}
	s.Scale = t
	s.Popup = PopupNone
	return s, nil
}

// SetHighlight selects a highlight target ("" clears it) and closes any popup.
func (s State) SetHighlight(h string) (State, error) {
	if !ValidHighlight(h) {
		return s, fmt.Errorf("%w: %q", ErrUnknownHighlight, h)
	}
	s.Highlight = h
	s.Popup = PopupNone
	return s, nil
}

// OpenPopup opens p, replacing any popup already open.
func (s State) OpenPopup(p Popup) State {
	s.Popup = p
	return s
}

// ClosePopup closes the open popup, if any.
func (s State) ClosePopup() State {
	s.Popup = PopupNone
	return s
}

// MoveCursor shifts the cursor, staying on the board.
func (s State) MoveCursor(dString, dFret int) State {
	s.Cursor.String = min(max(s.Cursor.String+dString, 0), NumStrings-1)
	s.Cursor.Fret = ClampFret(s.Cursor.Fret + dFret)
	return s
}

// Event is a discrete user selection.
type Event interface {
	apply(State) (State, error)
}

type (
	RootSelected      struct{ Root string }
	ScaleSelected     struct{ Scale ScaleType }
	HighlightSelected struct{ Highlight string }
	PopupOpened       struct{ Popup Popup }
	PopupClosed       struct{}
	CursorMoved       struct{ DString, DFret int }
)

func (e RootSelected) apply(s State) (State, error)      { return s.SetRoot(e.Root) }
func (e ScaleSelected) apply(s State) (State, error)     { return s.SetScaleType(e.Scale) }
func (e HighlightSelected) apply(s State) (State, error) { return s.SetHighlight(e.Highlight) }
func (e PopupOpened) apply(s State) (State, error)       { return s.OpenPopup(e.Popup), nil }
func (PopupClosed) apply(s State) (State, error)         { return s.ClosePopup(), nil }
func (e CursorMoved) apply(s State) (State, error)       { return s.MoveCursor(e.DString, e.DFret), nil }

// Reduce applies ev to s. On error s is returned unchanged.
func Reduce(s State, ev Event) (State, error) {
	next, err := ev.apply(s)
	if err != nil {
		return s, err
	}
	return next, nil
}
