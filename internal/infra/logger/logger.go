// Package logger configures the process-wide zerolog logger.
// Output goes to stderr: stdout is reserved for the MCP stdio transport.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controls verbosity and output format.
type Config struct {
	Debug  bool
	Pretty bool
}

// Init replaces the global zerolog logger according to cfg.
func Init(cfg Config) {
	log.Logger = New(os.Stderr, cfg)
}

// New builds a logger writing to w. Pretty switches to the human-readable console writer.
func New(w io.Writer, cfg Config) zerolog.Logger {
	out := w
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: w}
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
