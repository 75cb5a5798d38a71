// Package logging builds the structured slog loggers used by the service
// and the CLI. Records use snake_case keys; text output by default, JSON
// when configured.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config configures a logger. The zero value logs Info and above to stderr
// as text.
type Config struct {
	// Level is any name ParseLevel accepts. Empty means info.
	Level string `yaml:"level" validate:"loglevel"`
	// JSON switches the handler to JSON output.
	JSON bool `yaml:"json"`
	// Output defaults to os.Stderr.
	Output io.Writer `yaml:"-"`
	// Service is attached to every record when non-empty.
	Service string `yaml:"-"`
}

// ParseLevel maps a level name to slog.Level, case-insensitively.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", name)
}

// New returns a logger for cfg. An unknown level falls back to info.
func New(cfg Config) *slog.Logger {
	level, _ := ParseLevel(cfg.Level)
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(out, hopts)
	} else {
		h = slog.NewTextHandler(out, hopts)
	}
	logger := slog.New(h)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}

	return logger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
