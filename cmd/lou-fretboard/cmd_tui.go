package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/chase3718/lou-fretboard/internal/fretboard"
	"github.com/chase3718/lou-fretboard/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive fretboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// initialState builds the first screen from the configured defaults.
func initialState() (fretboard.State, error) {
	typ, err := fretboard.ParseScaleType(cfg.Defaults.Scale)
	if err != nil {
		return fretboard.State{}, err
	}
	s := fretboard.DefaultState()
	if s, err = s.SetRoot(cfg.Defaults.Root); err != nil {
		return fretboard.State{}, err
	}
	if s, err = s.SetScaleType(typ); err != nil {
		return fretboard.State{}, err
	}
	return s.SetHighlight(cfg.Defaults.Highlight)
}

func runTUI(cmd *cobra.Command, args []string) error {
	state, err := initialState()
	if err != nil {
		return err
	}
	eval, err := newEvaluator()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	out := openSinks(cfg, logger)
	defer func() {
		if err := out.Close(); err != nil {
			logger.Warn("closing sinks", "err", err)
		}
	}()

	model, err := tui.New(tui.Options{
		Context:   ctx,
		Resolver:  fretboard.NewResolver(fretboard.DefaultTheory(), logger),
		Evaluator: eval,
		Frets:     cfg.Defaults.Frets,
		State:     state,
		Sink:      out,
		Duration:  cfg.Audio.Duration,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(gctx))
	g.Go(func() error {
		defer cancel()
		if _, err := prog.Run(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("fretboard ui: %w", err)
		}
		return nil
	})
	if out.midi != nil {
		g.Go(func() error { return out.midi.Run(gctx) })
	}
	return g.Wait()
}

func newEvaluator() (*fretboard.Evaluator, error) {
	spelling, err := fretboard.ParseSpelling(cfg.Defaults.Spelling)
	if err != nil {
		return nil, err
	}
	return fretboard.NewEvaluator(fretboard.DefaultTheory(),
		fretboard.WithSpelling(spelling),
		fretboard.WithLogger(logger),
	), nil
}
