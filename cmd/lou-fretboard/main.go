package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chase3718/lou-fretboard/internal/config"
	"github.com/chase3718/lou-fretboard/internal/logging"
)

var (
	// Global flags
	configPath string
	debug      bool
	logFile    string

	cfg       *config.Config
	logger    = slog.Default()
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "lou-fretboard",
	Short: "Guitar fretboard scale visualizer",
	Long: `lou-fretboard shows where the notes of a scale fall on a six-string
guitar in standard tuning, labels each with its degree from the root, and
plays tapped frets through the built-in synth, a MIDI output or the
lou-guitar robot.

Run without arguments to start the interactive fretboard.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging (with source locations)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
}

// setup loads the configuration and installs the logger. Interactive runs
// keep the terminal clean unless a log file is given.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("debug") {
		c.Logging.Debug = debug
	}
	if logFile != "" {
		c.Logging.File = logFile
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	cfg = c

	w, closer, err := logging.Output(c.Logging.File, isInteractive(cmd))
	if err != nil {
		return err
	}
	logCloser = closer
	logger = logging.Init(w, c.Logging.Debug)
	logger.Debug("config loaded", "path", configPath, "root", c.Defaults.Root, "scale", c.Defaults.Scale)
	return nil
}

func isInteractive(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == tuiCmd
}

// run executes the command line and closes the log file whether or not the
// command failed.
func run(ctx context.Context) error {
	defer closeLog()
	return rootCmd.ExecuteContext(ctx)
}

func closeLog() {
	if logCloser == nil {
		return
	}
	_ = logCloser.Close()
	logCloser = nil
	logger = logging.Init(os.Stderr, false)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
