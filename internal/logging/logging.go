// Package logging holds the process-wide zerolog logger. Logging is off by
// default; the CLI enables debug output with --verbose.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

var logger = zerolog.Nop()

// Init configures the global logger. With verbose false all output is
// discarded.
func Init(w io.Writer, verbose bool) {
	if !verbose {
		logger = zerolog.Nop()
		return
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	logger = zerolog.New(cw).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

// L returns the global logger.
func L() *zerolog.Logger {
	return &logger
}
