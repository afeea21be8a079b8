// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// New returns a text logger writing to w. Debug enables debug records and
// file:line sources.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	return slog.New(h)
}

// Init builds the logger, installs it with slog.SetDefault so the stdlib log
// package routes through it too, and returns it.
func Init(w io.Writer, debug bool) *slog.Logger {
	logger := New(w, debug)
	slog.SetDefault(logger)
	return logger
}

// Output resolves where logs go. An empty path means stderr, or nowhere when
// quiet is set (the TUI owns the terminal). The returned closer is never nil.
func Output(path string, quiet bool) (io.Writer, io.Closer, error) {
	if path == "" {
		if quiet {
			return io.Discard, nopCloser{}, nil
		}
		return os.Stderr, nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
