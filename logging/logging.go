// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup sends log.Logger to a console writer on out and sets the global
// level. It returns the configured logger.
func Setup(out io.Writer, debug bool) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	consoleWriter := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("debug logging enabled")
	}
	return log.Logger
}

// Component returns log.Logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
