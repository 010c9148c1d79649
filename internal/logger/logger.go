// Package logger builds the zerolog logger shared by the commands and the HTTP service.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/dirk.krummacker/contacts-web/internal/config"
)

// New returns a logger writing to stderr in the configured format and level. An unknown
// level falls back to info.
func New(cfg config.LogConfig) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
