package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/caveplan-go/internal/infrastructure/config"
)

// New builds the application logger from logging configuration
func New(cfg *config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	return logger.Level(level).With().Timestamp().Logger()
}
