// Package logging builds the arcade's charmbracelet loggers.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultFile is where interactive commands write their log.
const DefaultFile = "~/.arcade/arcade.log"

// Options configures a logger.
type Options struct {
	Prefix string
	Level  string // debug, info, warn, error
}

// ParseLevel converts a level name to a log.Level.
// An empty string means info.
func ParseLevel(s string) (log.Level, error) {
	if s == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging: unknown level %q", s)
	}
	return lvl, nil
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	lvl, err := ParseLevel(opts.Level)
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           lvl,
	})
	if err != nil {
		logger.Warn("falling back to info level", "error", err)
	}
	return logger
}

// NewFile returns a logger appending to path (~ is expanded) and a closer for
// the underlying file. When the file cannot be opened the logger discards
// everything so the game still runs.
func NewFile(path string, opts Options) (*log.Logger, io.Closer, error) {
	if path == "" {
		path = DefaultFile
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return New(io.Discard, opts), nopCloser{}, fmt.Errorf("logging: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return New(io.Discard, opts), nopCloser{}, fmt.Errorf("logging: cannot create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return New(io.Discard, opts), nopCloser{}, fmt.Errorf("logging: cannot open %s: %w", path, err)
	}
	return New(f, opts), f, nil
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *log.Logger {
	return New(io.Discard, Options{})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
