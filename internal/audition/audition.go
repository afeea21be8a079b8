// Package audition defines how a tapped fret is played back.
package audition

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chase3718/lou-fretboard/internal/fretboard"
)

// DefaultDuration is a quarter note.
const DefaultDuration = "4n"

// Request asks a sink to sound one note.
type Request struct {
	Position fretboard.Position
	Note     string // spelled note with octave, e.g. "Bb2"
	Duration string // duration tag such as "4n"
}

// Auditioner plays a Request. Implementations must accept any note the
// fretboard evaluator produces.
type Auditioner interface {
	Audition(ctx context.Context, req Request) error
}

// Func adapts a function to Auditioner.
type Func func(ctx context.Context, req Request) error

func (f Func) Audition(ctx context.Context, req Request) error { return f(ctx, req) }

// Fanout sends each request to every sink and joins their errors.
type Fanout struct {
	sinks  []Auditioner
	logger *slog.Logger
}

// NewFanout drops nil sinks. A nil logger uses slog.Default.
func NewFanout(logger *slog.Logger, sinks ...Auditioner) *Fanout {
	if logger == nil {
		logger = slog.Default()
	}
	f := &Fanout{logger: logger}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

// Len is the number of sinks.
func (f *Fanout) Len() int { return len(f.sinks) }

func (f *Fanout) Audition(ctx context.Context, req Request) error {
	if req.Duration == "" {
		req.Duration = DefaultDuration
	}
	var errs []error
	for _, s := range f.sinks {
		if err := s.Audition(ctx, req); err != nil {
			f.logger.Warn("audition failed", "note", req.Note, "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
