// Package logging builds the slog logger shared by the upload binaries.
package logging

import (
	"log/slog"
	"os"
)

// NewLogger returns a logger writing to stderr so diagnostics never mix with
// the tool's stdout result line.
func NewLogger(verbose, isJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if isJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
