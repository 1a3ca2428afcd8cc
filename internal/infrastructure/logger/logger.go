package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"augeo-server/services/admin-api/internal/config"
)

// New builds the root zerolog logger from configuration.
func New(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if cfg.Environment == "development" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log = zerolog.New(os.Stderr)
	}

	return log.Level(level).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Logger()
}
