package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application logger. Dev mode writes human readable
// console output at debug level; anything else writes JSON at info level.
func New(appMode string) zerolog.Logger {
	return NewWithWriter(appMode, os.Stdout)
}

// NewWithWriter is New with an explicit destination
func NewWithWriter(appMode string, w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	out := w
	if appMode == "dev" {
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "bank-loan-simulator").
		Logger()
}

// Nop returns a logger that discards everything, for tests
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
