package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/oscillab/oscillab/cmd/workbench/config"
)

func TestNew_Formats(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		t.Run(format, func(t *testing.T) {
			cfg := &config.Config{
				LogFormat: format,
				LogLevel:  "info",
			}

			logger := New(cfg)
			if logger == nil {
				t.Fatal("New() returned nil")
			}

			// Logger should be usable
			logger.Info("test message", "key", "value")
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLevel(tt.name); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestNew_LevelGates(t *testing.T) {
	cfg := &config.Config{
		LogFormat: "text",
		LogLevel:  "warn",
	}

	logger := New(cfg)
	if !logger.Enabled(context.TODO(), slog.LevelWarn) {
		t.Error("expected warn to be enabled at warn level")
	}
	if logger.Enabled(context.TODO(), slog.LevelInfo) {
		t.Error("expected info to be disabled at warn level")
	}
}
