// Package logging builds the zap logger shared by every pokebox component.
// The terminal UI owns stdout and stderr, so logs go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects where and how much to log.
type Config struct {
	Level string
	// Path is the log file. Empty discards all output.
	Path string
}

// Logger bundles the logger with the level handle so callers can change
// verbosity while running.
type Logger struct {
	*zap.Logger
	Level zap.AtomicLevel
}

// New returns a JSON file logger.
func New(cfg Config) (*Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cfg.Level != "" {
		lvl, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level.SetLevel(lvl)
	}
	if cfg.Path == "" {
		return &Logger{Logger: zap.NewNop(), Level: level}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = level
	config.OutputPaths = []string{cfg.Path}
	config.ErrorOutputPaths = []string{cfg.Path}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Sampling = nil

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return &Logger{Logger: logger.Named("pokebox"), Level: level}, nil
}

// SetLevel changes the verbosity; an unknown level leaves it untouched.
func (l *Logger) SetLevel(name string) error {
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	l.Level.SetLevel(lvl)
	return nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop(), Level: zap.NewAtomicLevel()}
}
