package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction
type Config struct {
	Level  string
	Pretty bool
}

// New creates a zerolog logger writing to stderr. Unknown levels fall back
// to info.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}
