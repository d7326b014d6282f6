// Package logger builds the zerolog logger the replay commands share.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger at the given level. Format "console" is
// human-readable; anything else emits JSON lines for downstream tooling.
func New(level, format string) (*zerolog.Logger, error) {
	if level == "" {
		level = "info"
	}
	lv, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(lv)
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stderr
	if format == "console" || format == "" {
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		}
	}

	log := zerolog.New(output).With().Timestamp().Logger()
	return &log, nil
}
