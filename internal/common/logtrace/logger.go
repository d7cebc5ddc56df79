// Package logtrace provides logging and tracing utilities for the application.
// It integrates with zerolog for structured logging and supports request tracing.
package logtrace

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel is used when no level or an unknown level is configured.
const DefaultLevel = zerolog.InfoLevel

// InitLogger initializes the global logger with Unix timestamp format at the
// given level. Output goes to stderr; a console writer is used when stderr is a
// terminal.
func InitLogger(level string) {
	var w io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}
	initLogger(w, level)
}

func initLogger(w io.Writer, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(ParseLevel(level))
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// ParseLevel converts a level name to a zerolog level, DefaultLevel when empty
// or unknown.
func ParseLevel(level string) zerolog.Level {
	level = strings.TrimSpace(strings.ToLower(level))
	if level == "" {
		return DefaultLevel
	}
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return DefaultLevel
	}
	return l
}
