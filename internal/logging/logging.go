// Package logging configures the framework's logrus logger. Entries go to
// stdout and, when a directory is configured, to a rotating log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration options.
type Config struct {
	// Level is a logrus level name (trace, debug, info, warn, error).
	Level string
	// Dir is the directory for the rotating log file. Empty disables file output.
	Dir string
	// FileName is the log file name inside Dir.
	FileName string
	// MaxSizeMB is the size of a single log file before rotation.
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int
	// MaxAgeDays is the number of days to keep rotated files.
	MaxAgeDays int
	// Compress gzips rotated files.
	Compress bool
	// Console additionally writes entries to Stdout.
	Console bool
}

// DefaultConfig returns defaults suitable for a local test run.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		FileName:   "sauceqa.log",
		MaxSizeMB:  20,
		MaxBackups: 5,
		MaxAgeDays: 7,
		Compress:   true,
		Console:    true,
	}
}

// Setup builds a logger from cfg. The returned close function releases the log
// file and must be called before the process exits.
func Setup(cfg *Config) (*logrus.Logger, func() error, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, os.Stdout)
	}

	closeFn := func() error { return nil }
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		name := cfg.FileName
		if name == "" {
			name = "sauceqa.log"
		}
		lj := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, name),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		writers = append(writers, lj)
		closeFn = lj.Close
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	return logger, closeFn, nil
}

// NewNullLogger returns a logger that discards everything.
func NewNullLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
