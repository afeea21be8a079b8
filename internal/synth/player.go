// Package synth is a small polyphonic sine synthesizer used to audition
// fretboard notes.
package synth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/chase3718/lou-fretboard/internal/audition"
	"github.com/chase3718/lou-fretboard/internal/theory"
)

var (
	ErrClosed  = errors.New("synth closed")
	ErrNoPitch = errors.New("note has no octave")
)

// Backend opens an audio device that pulls samples from src. The returned
// channel is closed once the device is ready to play.
type Backend interface {
	Open(sampleRate int, src io.Reader) (<-chan struct{}, error)
	Close() error
}

// State is the device lifecycle.
type State int

const (
	Uninitialized State = iota
	Starting
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "uninitialized"
}

// Options configures a Player.
type Options struct {
	SampleRate int
	BPM        float64
	Envelope   Envelope
	Logger     *slog.Logger
}

func (o *Options) setDefaults() {
	if o.SampleRate <= 0 {
		o.SampleRate = 44100
	}
	if o.BPM <= 0 {
		o.BPM = DefaultBPM
	}
	if o.Envelope == (Envelope{}) {
		o.Envelope = DefaultEnvelope
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Player owns the audio device. Nothing is opened until the first Start or
// Audition; playback waits for the device while visual state never does.
type Player struct {
	backend Backend
	mixer   *Mixer
	opts    Options
	logger  *slog.Logger

	mu      sync.Mutex
	state   State
	err     error
	done    chan struct{} // closed when state leaves Starting
	closing chan struct{}
	closed  bool
}

// NewPlayer returns an uninitialized player.
func NewPlayer(b Backend, opts Options) *Player {
	opts.setDefaults()
	return &Player{
		backend: b,
		mixer:   NewMixer(opts.SampleRate, opts.Envelope),
		opts:    opts,
		logger:  opts.Logger,
		closing: make(chan struct{}),
	}
}

// State reports the lifecycle state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Mixer exposes the voice mixer.
func (p *Player) Mixer() *Mixer { return p.mixer }

// Start begins device setup once. The returned channel is closed when setup
// finishes, successfully or not.
func (p *Player) Start() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done != nil {
		return p.done
	}
	p.done = make(chan struct{})
	if p.closed {
		p.state, p.err = Failed, ErrClosed
		close(p.done)
		return p.done
	}
	p.state = Starting
	p.logger.Debug("synth: opening audio device", "sample_rate", p.opts.SampleRate)
	go p.open()
	return p.done
}

func (p *Player) open() {
	ready, err := p.backend.Open(p.opts.SampleRate, p.mixer)
	if err == nil {
		select {
		case <-ready:
		case <-p.closing:
			err = ErrClosed
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state, p.err = Failed, err
		p.logger.Error("synth: audio device failed", "err", err)
	} else {
		p.state = Ready
		p.logger.Info("synth: audio device ready")
	}
	close(p.done)
}

// Audition waits for the device, then plays req.
func (p *Player) Audition(ctx context.Context, req audition.Request) error {
	note, err := theory.ParseNote(req.Note)
	if err != nil {
		return err
	}
	freq, ok := note.Frequency()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoPitch, req.Note)
	}
	tag := req.Duration
	if tag == "" {
		tag = audition.DefaultDuration
	}
	length, err := ParseDuration(tag, p.opts.BPM)
	if err != nil {
		return err
	}

	select {
	case <-p.Start():
	case <-ctx.Done():
		return ctx.Err()
	}
	p.mu.Lock()
	state, serr := p.state, p.err
	p.mu.Unlock()
	if state != Ready {
		return fmt.Errorf("synth %s: %w", state, serr)
	}

	p.mixer.NoteOn(freq, length)
	p.logger.Debug("synth: note on", "note", req.Note, "hz", freq, "length", length)
	return nil
}

// Close releases the device and aborts a pending setup.
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.closing)
	started := p.done != nil
	done := p.done
	p.mu.Unlock()

	if !started {
		return nil
	}
	<-done
	return p.backend.Close()
}
