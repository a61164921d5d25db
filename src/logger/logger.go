package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"stocks-api/src/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// -----------------------------------------------------------------------------

// Init configures the global zerolog logger from the application config.
func Init(cfg *models.MConfig) error {
	levelName := strings.ToLower(cfg.LogLevel)
	if levelName == "" {
		levelName = "info"
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stderr
	if cfg.LogFormat != "json" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}

	log.Logger = zerolog.New(out).With().
		Timestamp().
		Str("service", cfg.Name).
		Logger()
	return nil
}

// -----------------------------------------------------------------------------

// Logger provides component-scoped logging on top of the global logger
type Logger struct {
	name   string
	logger zerolog.Logger
}

// -----------------------------------------------------------------------------

// NewLogger creates a component logger. Call Init first so the service
// fields are inherited.
func NewLogger(name string) *Logger {
	return &Logger{
		name:   name,
		logger: log.Logger.With().Str("component", name).Logger(),
	}
}

// -----------------------------------------------------------------------------

// Zerolog exposes the underlying logger for structured events
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.logger
}

// -----------------------------------------------------------------------------

// Debug logs diagnostic messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

// -----------------------------------------------------------------------------

func (l *Logger) Warning(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logger.Info().Msgf(format, args...)
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	l.logger.Fatal().Msgf(format, args...)
}
