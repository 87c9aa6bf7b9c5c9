// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config represents logger configuration from the environment.
// Level is a string like "debug", "info", "error";
// HumanFriendly toggles between console (true) and JSON (false) output.
type Config struct {
	Level         string
	HumanFriendly bool
}

// New creates a zerolog.Logger based on Config. Unknown levels fall back to
// info.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.HumanFriendly {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
