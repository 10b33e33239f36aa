// Package logging sets up the zerolog logger. The terminal belongs to the
// TUI, so log output always goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// TimeFormat is the timestamp layout used in log lines.
const TimeFormat = "2006-01-02_15:04:05"

// ParseLevel parses a level name, defaulting to info for an empty string.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// New returns a console-formatted logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: TimeFormat,
		NoColor:    true,
	}).Level(level).With().Timestamp().Caller().Logger()
}

// OpenFile opens (appending) the log file at path and returns a logger for it.
// The caller closes the returned file.
func OpenFile(path, levelName string) (zerolog.Logger, *os.File, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return New(f, level), f, nil
}
