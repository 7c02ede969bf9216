// ============================================================================
// Mina - Language Front-End
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating the CLI's loggers
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	minalog "github.com/msto63/mina/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Logger name, printed with every entry
	Name string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format
	Format string // "json", "text" or "console" (default: text)

	// Output writer (default: stderr, so stdout stays free for results)
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  minalog.DefaultLevel().String(),
		Format: "text",
	}
}

// NewLogger creates a foundation logger from cfg. Unknown levels and
// formats fall back to the defaults.
func NewLogger(cfg LoggerConfig) *minalog.Logger {
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return minalog.NewWithConfig(minalog.Config{
		Level:  parseLevel(cfg.Level),
		Format: parseFormat(cfg.Format),
		Output: output,
		Name:   cfg.Name,
	})
}

// NewSimpleLogger creates a text logger on stderr at the default level
func NewSimpleLogger(name string) *minalog.Logger {
	return NewLogger(DefaultLoggerConfig(name))
}

// parseLevel converts a string level to minalog.Level
func parseLevel(level string) minalog.Level {
	l, err := minalog.ParseLevel(level)
	if err != nil {
		return minalog.DefaultLevel()
	}
	return l
}

// parseFormat converts a string format to minalog.Format
func parseFormat(format string) minalog.Format {
	f, err := minalog.ParseFormat(format)
	if err != nil {
		return minalog.FormatText
	}
	return f
}
