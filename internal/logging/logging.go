// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup builds the root logger. Unknown levels fall back to info.
func Setup(level string, pretty bool) zerolog.Logger {
	return SetupWithWriter(level, pretty, os.Stderr)
}

// SetupWithWriter is Setup with an explicit destination.
func SetupWithWriter(level string, pretty bool, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "01.02.06 15:04:05"}
	}

	logger := zerolog.New(out).With().Timestamp().Logger().Level(lvl)
	log.Logger = logger
	return logger
}

// Component returns a child logger tagged with the component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
