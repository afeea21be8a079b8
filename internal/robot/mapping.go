package robot

import (
	"errors"
	"fmt"

	"github.com/chase3718/lou-fretboard/internal/fretboard"
)

// ErrUnplayable is returned for positions the robot cannot fret.
var ErrUnplayable = errors.New("robot: position unplayable")

// openPitch is the MIDI pitch of each robot string:
// E2(40)  A2(45)  D3(50)  G3(55)  B3(59)  E4(64)
var openPitch = [NumStrings]int{40, 45, 50, 55, 59, 64}

// robotString converts a fretboard string index (0 = high E) to the robot's
// (0 = low E).
func robotString(s int) int { return NumStrings - 1 - s }

// FrameFor builds the frame that frets pos and strums only that string.
// maxFret bounds the reachable frets; zero means MaxFret.
func FrameFor(pos fretboard.Position, maxFret int, duration, seq byte) (Frame, error) {
	if maxFret <= 0 {
		maxFret = MaxFret
	}
	if pos.String < 0 || pos.String >= NumStrings {
		return Frame{}, fmt.Errorf("%w: string %d", ErrUnplayable, pos.String)
	}
	if pos.Fret < 0 || pos.Fret > maxFret {
		return Frame{}, fmt.Errorf("%w: fret %d above %d", ErrUnplayable, pos.Fret, maxFret)
	}
	s := robotString(pos.String)
	f := EmptyFrame(seq)
	f.Fret[s] = byte(pos.Fret)
	f.StrumMask = 1 << s
	f.Duration = duration
	return f, nil
}

// PitchAt is the MIDI pitch the robot sounds for pos.
func PitchAt(pos fretboard.Position) int {
	return openPitch[robotString(pos.String)] + pos.Fret
}
