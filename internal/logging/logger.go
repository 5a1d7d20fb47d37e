// Package logging builds the zap logger shared by the server, the CLI and the
// background jobs, plus small adapters for libraries with their own logger
// interfaces.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration
type Config struct {
	// Level is the log level (debug, info, warn, error)
	Level string
	// Format is the log encoding (json or console)
	Format string
	// OutputPaths is a list of paths to write logs to
	OutputPaths []string
}

// New creates a logger for the given configuration. Console format turns on
// development encoding with caller information.
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	dev := cfg.Format == "console"
	encoderConfig := zap.NewProductionEncoderConfig()
	if dev {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stdout"}
	}

	zapConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       dev,
		DisableCaller:     !dev,
		DisableStacktrace: !dev,
		Encoding:          encodingFor(cfg.Format),
		EncoderConfig:     encoderConfig,
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
	}

	return zapConfig.Build()
}

func encodingFor(format string) string {
	if format == "console" {
		return "console"
	}
	return "json"
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *zap.Logger {
	return zap.NewNop()
}
