package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chase3718/lou-fretboard/internal/audition"
	"github.com/chase3718/lou-fretboard/internal/fretboard"
	"github.com/chase3718/lou-fretboard/internal/synth"
)

// releaseTail lets the synth envelope and pending note-offs finish before
// the sinks are closed.
const releaseTail = 1200 * time.Millisecond

var playCmd = &cobra.Command{
	Use:   "play NOTE [DURATION]",
	Short: "Play one note through the configured outputs",
	Example: `  lou-fretboard play A2
  lou-fretboard play Bb3 2n`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		note := args[0]
		duration := cfg.Audio.Duration
		if len(args) == 2 {
			duration = args[1]
		}
		length, err := synth.ParseDuration(duration, synth.DefaultBPM)
		if err != nil {
			return err
		}
		positions, err := fretboard.StandardTuning.Positions(note)
		if err != nil {
			return err
		}
		if len(positions) == 0 {
			return fmt.Errorf("%s is outside the fretboard (E2..%s)", note, topNote())
		}

		out := openSinks(cfg, logger)
		defer out.Close()
		if out.Len() == 0 {
			return errors.New("no audition output enabled")
		}
		if out.midi != nil {
			out.midi.Tick()
		}

		req := audition.Request{Position: positions[0], Note: note, Duration: duration}
		logger.Info("playing", "note", note, "string", req.Position.String+1, "fret", req.Position.Fret, "duration", duration)
		if err := out.Audition(cmd.Context(), req); err != nil {
			return err
		}

		select {
		case <-time.After(length + releaseTail):
		case <-cmd.Context().Done():
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func topNote() string {
	n, err := fretboard.DefaultTheory().Transpose(fretboard.StandardTuning[0], fretboard.MaxFret)
	if err != nil {
		return "?"
	}
	return n
}
