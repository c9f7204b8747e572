package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger builds the process logger and installs it as the zerolog global.
// Development gets a human-readable console writer, everything else JSON.
func InitLogger(appEnv string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	env := strings.ToLower(strings.TrimSpace(appEnv))

	var logger zerolog.Logger
	if env == "development" || env == "dev" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	log.Logger = logger
	return logger
}

// NopLogger discards everything; used by tests.
func NopLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}
