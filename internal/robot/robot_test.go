package robot

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chase3718/lou-fretboard/internal/audition"
	"github.com/chase3718/lou-fretboard/internal/fretboard"
	"github.com/chase3718/lou-fretboard/internal/theory"
)

type fakePort struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.Write(b)
}

func (p *fakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *fakePort) frames(t *testing.T) []Frame {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	data := p.buf.Bytes()
	require.Zero(t, len(data)%frameLen)
	var out []Frame
	for off := 0; off < len(data); off += frameLen {
		f, err := Decode(data[off : off+frameLen])
		require.NoError(t, err)
		out = append(out, f)
	}
	return out
}

func TestFrameEncode(t *testing.T) {
	f := EmptyFrame(7)
	f.Fret[0] = 5
	f.StrumMask = 1
	f.Duration = 20

	b := f.Encode()
	require.Len(t, b, frameLen)
	assert.Equal(t, []byte{SOF0, SOF1, 11, CmdApplyFrame}, b[:4])

	var cks byte
	for _, v := range b[2 : len(b)-1] {
		cks ^= v
	}
	assert.Equal(t, cks, b[len(b)-1])

	got, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestDecode_Errors(t *testing.T) {
	b := EmptyFrame(1).Encode()

	_, err := Decode(b[:5])
	assert.ErrorIs(t, err, ErrShortFrame)

	bad := append([]byte(nil), b...)
	bad[0] = 0
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrBadFrame)

	bad = append([]byte(nil), b...)
	bad[5] ^= 0xff
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestFrameFor(t *testing.T) {
	f, err := FrameFor(fretboard.Position{String: 5, Fret: 3}, 0, 20, 9)
	require.NoError(t, err)
	assert.Equal(t, byte(3), f.Fret[0])
	assert.Equal(t, byte(1), f.StrumMask)
	for s := 1; s < NumStrings; s++ {
		assert.Equal(t, byte(OpenFret), f.Fret[s])
	}
	assert.Equal(t, byte(9), f.Seq)

	f, err = FrameFor(fretboard.Position{String: 0, Fret: 0}, 0, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, byte(0), f.Fret[5])
	assert.Equal(t, byte(1<<5), f.StrumMask)

	_, err = FrameFor(fretboard.Position{String: 2, Fret: 12}, 0, 20, 0)
	assert.ErrorIs(t, err, ErrUnplayable)
	_, err = FrameFor(fretboard.Position{String: 2, Fret: 12}, fretboard.MaxFret, 20, 0)
	assert.NoError(t, err)
	_, err = FrameFor(fretboard.Position{String: 6, Fret: 1}, 0, 20, 0)
	assert.ErrorIs(t, err, ErrUnplayable)
}

func TestRobotTuningMatchesFretboard(t *testing.T) {
	for s, open := range fretboard.StandardTuning {
		key, ok := theory.MustParseNote(open).Midi()
		require.True(t, ok)
		assert.Equal(t, key, PitchAt(fretboard.Position{String: s}), open)
	}
}

func TestLink_AuditionAndRelease(t *testing.T) {
	port := &fakePort{}
	l := NewLink(port, Options{})

	req := audition.Request{Position: fretboard.Position{String: 4, Fret: 2}, Note: "B2", Duration: "0.01"}
	require.NoError(t, l.Audition(context.Background(), req))

	require.Eventually(t, func() bool { return len(port.frames(t)) == 2 }, time.Second, 5*time.Millisecond)
	frames := port.frames(t)
	assert.Equal(t, byte(2), frames[0].Fret[1])
	assert.Equal(t, byte(1<<1), frames[0].StrumMask)
	assert.Equal(t, byte(0), frames[0].Seq)
	assert.Equal(t, EmptyFrame(1), frames[1])

	require.NoError(t, l.Close())
	assert.True(t, port.closed)
	assert.Len(t, port.frames(t), 3)
	require.NoError(t, l.Close())
	assert.Error(t, l.Audition(context.Background(), req))
}

func TestLink_RefusesUnreachableFret(t *testing.T) {
	port := &fakePort{}
	l := NewLink(port, Options{MaxFret: 11})
	err := l.Audition(context.Background(), audition.Request{Position: fretboard.Position{String: 0, Fret: 15}, Note: "G5"})
	assert.ErrorIs(t, err, ErrUnplayable)
	assert.Empty(t, port.frames(t))
}
