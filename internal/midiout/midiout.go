// Package midiout auditions notes on an external MIDI synth. It keeps a
// connection to the preferred output port and follows hot-plug changes.
package midiout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/chase3718/lou-fretboard/internal/audition"
	"github.com/chase3718/lou-fretboard/internal/synth"
	"github.com/chase3718/lou-fretboard/internal/theory"
)

// ErrNotConnected is returned when no output port is open.
var ErrNotConnected = errors.New("midi: no output connected")

const RescanInterval = time.Second

// Outputs lists MIDI output ports. *rtmididrv.Driver satisfies it.
type Outputs interface {
	Outs() ([]drivers.Out, error)
	Close() error
}

// Options configures a Port.
type Options struct {
	Channel   uint8 // 0-based
	Velocity  uint8
	BPM       float64
	Preferred []string // substrings picked first, case-insensitive
	Excluded  []string // substrings never auto-connected
	Logger    *slog.Logger
}

// DefaultExcluded are the virtual/system ports skipped by default.
var DefaultExcluded = []string{"Midi Through", "Through Port", "Dummy"}

func (o *Options) setDefaults() {
	if o.Velocity == 0 {
		o.Velocity = 100
	}
	if o.BPM <= 0 {
		o.BPM = synth.DefaultBPM
	}
	if o.Excluded == nil {
		o.Excluded = DefaultExcluded
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Port watches the available outputs and keeps one open.
type Port struct {
	outs   Outputs
	opts   Options
	logger *slog.Logger

	mu           sync.Mutex
	out          drivers.Out
	send         func(midi.Message) error
	connected    bool
	selectedName string
	lastRescanAt time.Time
	timers       map[*time.Timer]struct{}
	now          func() time.Time
}

// Open initialises the rtmidi driver. Call Close when done.
func Open(opts Options) (*Port, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	return New(drv, opts), nil
}

// New wraps an existing driver.
func New(outs Outputs, opts Options) *Port {
	opts.setDefaults()
	return &Port{
		outs:   outs,
		opts:   opts,
		logger: opts.Logger,
		timers: make(map[*time.Timer]struct{}),
		now:    time.Now,
	}
}

// Connected returns the open port name, if any.
func (p *Port) Connected() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selectedName, p.connected
}

// Run ticks the watcher until ctx is cancelled.
func (p *Port) Run(ctx context.Context) error {
	p.Tick()
	ticker := time.NewTicker(RescanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.Tick()
		}
	}
}

// Tick rescans at most once per RescanInterval: it drops a port that
// disappeared and connects to a preferred one when disconnected.
func (p *Port) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if !p.lastRescanAt.IsZero() && now.Sub(p.lastRescanAt) < RescanInterval {
		return
	}
	p.lastRescanAt = now

	names := p.listOutputs()
	if p.connected {
		for _, n := range names {
			if n == p.selectedName {
				return
			}
		}
		p.logger.Warn("midi: output disappeared", "device", p.selectedName)
		p.closeConn()
		p.lastRescanAt = time.Time{}
		return
	}

	if len(names) == 0 {
		return
	}
	cand, ok := p.pickPreferred(names)
	if !ok {
		p.logger.Debug("midi: no preferred output", "available", strings.Join(names, ", "))
		return
	}
	if err := p.openByName(cand); err != nil {
		p.logger.Error("midi: connect failed", "device", cand, "err", err)
	}
}

// Audition sends a note-on now and the matching note-off after the duration.
func (p *Port) Audition(_ context.Context, req audition.Request) error {
	n, err := theory.ParseNote(req.Note)
	if err != nil {
		return err
	}
	key, ok := n.Midi()
	if !ok || key < 0 || key > 127 {
		return fmt.Errorf("midi: note %s has no key number", req.Note)
	}
	tag := req.Duration
	if tag == "" {
		tag = audition.DefaultDuration
	}
	length, err := synth.ParseDuration(tag, p.opts.BPM)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.connected {
		return ErrNotConnected
	}
	ch, k := p.opts.Channel, uint8(key)
	if err := p.send(midi.NoteOn(ch, k, p.opts.Velocity)); err != nil {
		return fmt.Errorf("midi: note on %s: %w", req.Note, err)
	}
	p.logger.Debug("midi: note on", "note", req.Note, "key", k, "device", p.selectedName)

	send := p.send
	var timer *time.Timer
	timer = time.AfterFunc(length, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.timers, timer)
		if err := send(midi.NoteOff(ch, k)); err != nil {
			p.logger.Warn("midi: note off failed", "note", req.Note, "err", err)
		}
	})
	p.timers[timer] = struct{}{}
	return nil
}

// Close silences pending notes and shuts down the port and driver.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for t := range p.timers {
		t.Stop()
	}
	if p.connected {
		_ = p.send(midi.ControlChange(p.opts.Channel, 123, 0)) // all notes off
	}
	p.closeConn()
	return p.outs.Close()
}

func (p *Port) listOutputs() []string {
	outs, err := p.outs.Outs()
	if err != nil {
		p.logger.Error("midi: list outputs failed", "err", err)
		return nil
	}
	var names []string
	for _, out := range outs {
		name := out.String()
		if matchesAny(name, p.opts.Excluded) {
			p.logger.Debug("midi: output excluded", "device", name)
			continue
		}
		names = append(names, name)
	}
	return names
}

func (p *Port) pickPreferred(names []string) (string, bool) {
	for _, pat := range p.opts.Preferred {
		for _, name := range names {
			if containsCI(name, pat) {
				return name, true
			}
		}
	}
	if len(names) == 1 {
		return names[0], true
	}
	return "", false
}

func (p *Port) openByName(name string) error {
	outs, err := p.outs.Outs()
	if err != nil {
		return err
	}
	var found drivers.Out
	for _, out := range outs {
		if out.String() == name {
			found = out
			break
		}
	}
	if found == nil {
		return fmt.Errorf("output %q not found", name)
	}
	send, err := midi.SendTo(found)
	if err != nil {
		return fmt.Errorf("open %q: %w", name, err)
	}
	p.out = found
	p.send = send
	p.connected = true
	p.selectedName = name
	p.logger.Info("midi: connected", "device", name)
	return nil
}

func (p *Port) closeConn() {
	if p.out != nil {
		_ = p.out.Close()
		p.out = nil
	}
	p.send = nil
	p.connected = false
	p.selectedName = ""
}

func matchesAny(name string, patterns []string) bool {
	for _, pat := range patterns {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
