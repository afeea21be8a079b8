package robot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/chase3718/lou-fretboard/internal/audition"
	"github.com/chase3718/lou-fretboard/internal/synth"
	"github.com/chase3718/lou-fretboard/internal/theory"
)

// Options configures a Link.
type Options struct {
	MaxFret  int     // reachable frets; zero means MaxFret
	Duration byte    // actuator duration field of each frame
	BPM      float64 // tempo for the release timer
	Logger   *slog.Logger
}

func (o *Options) setDefaults() {
	if o.MaxFret <= 0 {
		o.MaxFret = MaxFret
	}
	if o.Duration == 0 {
		o.Duration = 20
	}
	if o.BPM <= 0 {
		o.BPM = synth.DefaultBPM
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Link sends frames to the robot. Each audition frets and strums one string
// and releases it after the note length.
type Link struct {
	port   io.WriteCloser
	opts   Options
	logger *slog.Logger

	mu      sync.Mutex
	seq     byte
	release *time.Timer
	closed  bool
}

// OpenSerial opens the named serial device at the given baud rate.
func OpenSerial(name string, baud int, opts Options) (*Link, error) {
	p, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("serial: open %s at %d baud: %w", name, baud, err)
	}
	l := NewLink(p, opts)
	l.logger.Info("serial: port opened", "device", name, "baud", baud)
	return l, nil
}

// NewLink wraps an already open port.
func NewLink(port io.WriteCloser, opts Options) *Link {
	opts.setDefaults()
	return &Link{port: port, opts: opts, logger: opts.Logger}
}

// Audition frets req.Position on the robot.
func (l *Link) Audition(_ context.Context, req audition.Request) error {
	tag := req.Duration
	if tag == "" {
		tag = audition.DefaultDuration
	}
	length, err := synth.ParseDuration(tag, l.opts.BPM)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return fmt.Errorf("serial: link closed")
	}
	frame, err := FrameFor(req.Position, l.opts.MaxFret, l.opts.Duration, l.seq)
	if err != nil {
		return err
	}
	if n, err := theory.ParseNote(req.Note); err == nil {
		if key, ok := n.Midi(); ok && key != PitchAt(req.Position) {
			l.logger.Warn("serial: robot tuning differs from fretboard", "note", req.Note, "robot_pitch", PitchAt(req.Position))
		}
	}
	if err := l.sendLocked(frame); err != nil {
		return err
	}

	if l.release != nil {
		l.release.Stop()
	}
	l.release = time.AfterFunc(length, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed {
			return
		}
		if err := l.sendLocked(EmptyFrame(l.seq)); err != nil {
			l.logger.Error("serial: release failed", "err", err)
		}
	})
	return nil
}

func (l *Link) sendLocked(f Frame) error {
	data := f.Encode()
	n, err := l.port.Write(data)
	if err != nil {
		return fmt.Errorf("serial: write frame %d: %w", f.Seq, err)
	}
	l.logger.Debug("serial: frame sent", "bytes", n, "seq", f.Seq, "strum_mask", f.StrumMask)
	l.seq++
	return nil
}

// Close releases every string and closes the port.
func (l *Link) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	if l.release != nil {
		l.release.Stop()
	}
	if err := l.sendLocked(EmptyFrame(l.seq)); err != nil {
		l.logger.Warn("serial: final release failed", "err", err)
	}
	l.closed = true
	l.logger.Info("serial: closing port")
	return l.port.Close()
}
