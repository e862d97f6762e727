// Package logging builds the process logger: human-readable lines on the
// console and JSON lines in a size-rotated file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// DefaultDir is used when Options.Dir is empty.
	DefaultDir = "logs"

	defaultMaxSizeMB  = 10
	defaultMaxBackups = 5
	defaultMaxAgeDays = 30
)

// Options configures Setup.
type Options struct {
	// Dir holds the log file. Created if missing.
	Dir string
	// Level is the console level name; see ParseLevel. Verbose overrides it.
	Level   string
	Verbose bool
	// TestMode writes to test.log instead of librarian.log.
	TestMode bool
	// Console receives the text output. Defaults to os.Stderr.
	Console io.Writer

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Filename returns the log file name for the mode.
func (o Options) Filename() string {
	if o.TestMode {
		return "test.log"
	}
	return "librarian.log"
}

// Setup creates the logger. The file sink records debug and above (trace when
// the console asks for it);
// the console follows Level, or debug when Verbose is set.
// The returned Closer flushes and closes the log file.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	if opts.Dir == "" {
		opts.Dir = DefaultDir
	}
	if opts.Console == nil {
		opts.Console = os.Stderr
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = defaultMaxSizeMB
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = defaultMaxBackups
	}
	if opts.MaxAgeDays <= 0 {
		opts.MaxAgeDays = defaultMaxAgeDays
	}

	consoleLevel, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.Verbose && consoleLevel > slog.LevelDebug {
		consoleLevel = slog.LevelDebug
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory %s: %w", opts.Dir, err)
	}
	path := filepath.Join(opts.Dir, opts.Filename())
	fileLevel := min(consoleLevel, slog.LevelDebug)

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}

	handler := slog.NewMultiHandler(
		slog.NewTextHandler(opts.Console, &slog.HandlerOptions{
			Level:       consoleLevel,
			ReplaceAttr: ReplaceLevelNames,
		}),
		slog.NewJSONHandler(file, &slog.HandlerOptions{
			Level:       fileLevel,
			AddSource:   true,
			ReplaceAttr: ReplaceLevelNames,
		}),
	)
	logger := slog.New(handler)

	LogOperation(logger, "logging_initialized", "logging", "startup",
		"verbose", opts.Verbose,
		"test_mode", opts.TestMode,
		"log_file", path,
	)
	return logger, file, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
