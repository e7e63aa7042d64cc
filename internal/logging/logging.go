// Package logging builds the application logger from configuration.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomos/cadence/internal/config"
)

// New creates a leveled logger per the log configuration. With no file
// configured it writes to stderr; an empty level defaults to info.
func New(cfg config.LogConfig) (*log.Logger, error) {
	var w io.Writer = os.Stderr
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		w = f
	}

	level := log.InfoLevel
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "cadence",
	})
	return logger, nil
}

// Discard returns a logger that drops everything. Used where a component
// requires a logger but the caller has no use for its output.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
