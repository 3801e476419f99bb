// Package logging is the gallery's zerolog setup. The process-wide logger
// starts from GALLERY_LOG_LEVEL and GALLERY_LOG_FORMAT and is replaced by
// the CLI once flags are parsed; everything below the CLI should log
// through the logger carried in its context.
//
//	ctx := logging.WithCollection(ctx, "models")
//	logging.FromContext(ctx).Warn().Int("index", 3).Msg("Record rejected")
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Environment variables read when the package initializes.
const (
	EnvLevel  = "GALLERY_LOG_LEVEL"
	EnvFormat = "GALLERY_LOG_FORMAT"
)

var defaultLogger = NewLoggerFromConfig(envConfig())

// envConfig is DefaultConfig adjusted by the environment.
func envConfig() *Config {
	cfg := DefaultConfig()
	if level := os.Getenv(EnvLevel); level != "" {
		cfg.Level = level
	}
	if format := os.Getenv(EnvFormat); format != "" {
		cfg.Format = format
	}
	return cfg
}

// Default returns the process-wide logger. The pointer stays valid across
// SetDefault calls.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
}

// New returns a timestamped JSON logger writing to w at the global level.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// Debug starts a debug event on the default logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts an info event on the default logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warning event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts an error event on the default logger.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
