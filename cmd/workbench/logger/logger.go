// Package logger provides structured logging configuration for the workbench.
//
// It creates slog.Logger instances configured from the workbench Config,
// supporting text and JSON output and the usual levels (debug, info, warn,
// error). All logs are written to stdout for container-friendly collection.
package logger

import (
	"log/slog"
	"os"

	"github.com/oscillab/oscillab/cmd/workbench/config"
)

func New(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// parseLevel maps a level name to a slog.Level, defaulting to info for
// anything unrecognized.
func parseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
