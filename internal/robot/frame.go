// Package robot drives the lou-guitar string robot over a serial link: each
// audition becomes one full-state frame that frets and strums a string.
package robot

import (
	"errors"
	"fmt"
)

const (
	OpenFret      = 255
	NumStrings    = 6
	MaxFret       = 11 // highest fret the actuators reach
	CmdApplyFrame = 0x10
	SOF0          = 0xAA
	SOF1          = 0x55

	payloadLen = NumStrings + 4
	frameLen   = 4 + payloadLen + 1
)

var (
	ErrShortFrame = errors.New("robot: short frame")
	ErrBadFrame   = errors.New("robot: malformed frame")
	ErrChecksum   = errors.New("robot: checksum mismatch")
)

// Frame is a full-state snapshot of all 6 strings sent in one transfer.
// String 0 is the low E, matching the robot's wiring.
type Frame struct {
	Fret      [NumStrings]byte // 0..MaxFret, or OpenFret for open/muted
	StrumMask byte             // bit N set = strum string N
	ProfileID byte
	Duration  byte
	Seq       byte
}

// Encode builds the on-wire representation:
//
//	[SOF0][SOF1][LEN][CMD][fret0..5][StrumMask][ProfileID][Duration][Seq][CKS]
//
// LEN counts CMD plus the payload; CKS is the XOR of LEN, CMD and the payload.
func (f Frame) Encode() []byte {
	out := make([]byte, 0, frameLen)
	out = append(out, SOF0, SOF1, payloadLen+1, CmdApplyFrame)
	out = append(out, f.Fret[:]...)
	out = append(out, f.StrumMask, f.ProfileID, f.Duration, f.Seq)
	out = append(out, checksum(out[2:]))
	return out
}

// Decode parses one encoded frame, verifying framing and checksum.
func Decode(b []byte) (Frame, error) {
	if len(b) < frameLen {
		return Frame{}, fmt.Errorf("%w: %d bytes", ErrShortFrame, len(b))
	}
	if b[0] != SOF0 || b[1] != SOF1 || b[2] != payloadLen+1 || b[3] != CmdApplyFrame {
		return Frame{}, fmt.Errorf("%w: header % x", ErrBadFrame, b[:4])
	}
	if got, want := b[frameLen-1], checksum(b[2:frameLen-1]); got != want {
		return Frame{}, fmt.Errorf("%w: got %#x want %#x", ErrChecksum, got, want)
	}
	var f Frame
	copy(f.Fret[:], b[4:4+NumStrings])
	p := b[4+NumStrings:]
	f.StrumMask, f.ProfileID, f.Duration, f.Seq = p[0], p[1], p[2], p[3]
	return f, nil
}

func checksum(b []byte) byte {
	var cks byte
	for _, v := range b {
		cks ^= v
	}
	return cks
}

// EmptyFrame returns an all-open, no-strum frame used to release everything.
func EmptyFrame(seq byte) Frame {
	f := Frame{Seq: seq}
	for i := range f.Fret {
		f.Fret[i] = OpenFret
	}
	return f
}
