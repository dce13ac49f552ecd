// Package logging configures slog: JSON on stdout, optionally fanned out to
// a Postgres sink that keeps ERROR records.
package logging

import (
	"log/slog"
	"os"
)

// Setup initializes the global slog logger with JSON output to stdout.
// Development environments also get DEBUG records.
func Setup(env string) *slog.JSONHandler {
	level := slog.LevelInfo
	if env == "development" {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return handler
}

// Attach makes the default logger write to stdout and every sink.
func Attach(stdout slog.Handler, sinks ...slog.Handler) {
	slog.SetDefault(slog.New(NewMultiHandler(append([]slog.Handler{stdout}, sinks...)...)))
}
