package synth

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const otoBufferSize = 40 * time.Millisecond

// outputPlayer is the part of *oto.Player the backend drives.
type outputPlayer interface {
	Play()
	Close() error
}

// OtoBackend plays through the system audio device.
type OtoBackend struct {
	mu     sync.Mutex
	player outputPlayer
	closed bool
}

// Open creates the oto context; the player is attached once the context
// reports ready.
func (b *OtoBackend) Open(sampleRate int, src io.Reader) (<-chan struct{}, error) {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   otoBufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	out := make(chan struct{})
	go b.attach(ready, func() outputPlayer { return ctx.NewPlayer(src) }, out)
	return out, nil
}

// attach waits for the device and starts a player, unless Close ran first.
// out is closed either way.
func (b *OtoBackend) attach(ready <-chan struct{}, newPlayer func() outputPlayer, out chan<- struct{}) {
	defer close(out)
	<-ready
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	pl := newPlayer()
	pl.Play()
	b.player = pl
}

// Close stops the player. A player still waiting for the device is never
// started.
func (b *OtoBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.player == nil {
		return nil
	}
	pl := b.player
	b.player = nil
	if err := pl.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
