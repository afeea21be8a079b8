package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/chase3718/lou-fretboard/internal/audition"
	"github.com/chase3718/lou-fretboard/internal/config"
	"github.com/chase3718/lou-fretboard/internal/midiout"
	"github.com/chase3718/lou-fretboard/internal/robot"
	"github.com/chase3718/lou-fretboard/internal/synth"
)

// sinks owns every enabled audition output.
type sinks struct {
	*audition.Fanout
	midi    *midiout.Port // nil unless MIDI is enabled
	closers []io.Closer
}

// openSinks opens the outputs enabled in c. A sink that fails to open is
// logged and skipped so the fretboard still works without it.
func openSinks(c *config.Config, logger *slog.Logger) *sinks {
	s := &sinks{}
	var outs []audition.Auditioner

	if c.Audio.Enabled {
		p := synth.NewPlayer(&synth.OtoBackend{}, synth.Options{
			SampleRate: c.Audio.SampleRate,
			Logger:     logger.With("sink", "synth"),
		})
		outs = append(outs, p)
		s.closers = append(s.closers, p)
	}

	if c.MIDI.Enabled {
		port, err := midiout.Open(midiout.Options{
			Channel:   uint8(c.MIDI.Channel),
			Velocity:  uint8(c.MIDI.Velocity),
			Preferred: c.MIDI.Preferred,
			Excluded:  c.MIDI.Excluded,
			Logger:    logger.With("sink", "midi"),
		})
		if err != nil {
			logger.Error("midi output unavailable", "err", err)
		} else {
			s.midi = port
			outs = append(outs, port)
			s.closers = append(s.closers, port)
		}
	}

	if c.Robot.Enabled {
		link, err := robot.OpenSerial(c.Robot.Device, c.Robot.Baud, robot.Options{
			MaxFret:  c.Robot.MaxFret,
			Duration: byte(c.Robot.Duration),
			Logger:   logger.With("sink", "robot"),
		})
		if err != nil {
			logger.Error("robot unavailable", "device", c.Robot.Device, "err", err)
		} else {
			outs = append(outs, link)
			s.closers = append(s.closers, link)
		}
	}

	s.Fanout = audition.NewFanout(logger, outs...)
	logger.Debug("audition sinks opened", "count", s.Len())
	return s
}

// Close closes the sinks in reverse order of opening.
func (s *sinks) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sink: %w", err))
		}
	}
	return errors.Join(errs...)
}
