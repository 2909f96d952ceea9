// Package logging provides the structured logger shared by the server and CLI.
// It writes human-readable console output and, optionally, JSON lines to an
// append-only file. The level can be changed while the process runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z07:00"

func init() {
	zerolog.ErrorFieldName = "err"
}

// Options configures a Logger.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Empty means info.
	Level string
	// File, when set, receives JSON log lines in append mode.
	File string
	// Console receives human-readable output. Nil means stderr.
	Console io.Writer
	// NoColor disables ANSI colors on the console writer.
	NoColor bool
}

// Logger wraps a zerolog.Logger with a mutable level and an owned log file.
// A nil *Logger is a valid no-op logger.
type Logger struct {
	base  zerolog.Logger
	level atomic.Int32

	mu   sync.Mutex
	file *os.File
}

// New creates a logger from opts. Parent directories of the log file are
// created if needed.
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: consoleTimeFormat,
		NoColor:    opts.NoColor,
	}}

	l := &Logger{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		writers = append(writers, f)
	}

	l.base = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	l.level.Store(int32(level))
	return l, nil
}

// NewWriter creates a logger that writes JSON lines to w. Intended for tests
// that inspect output.
func NewWriter(w io.Writer, level zerolog.Level) *Logger {
	l := &Logger{base: zerolog.New(w).With().Timestamp().Logger()}
	l.level.Store(int32(level))
	return l
}

// Nop returns a logger that never writes anything.
func Nop() *Logger {
	l := &Logger{base: zerolog.Nop()}
	l.level.Store(int32(zerolog.Disabled))
	return l
}

// ParseLevel converts a level name to a zerolog level. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	if s == "warning" {
		s = "warn"
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return level, nil
}

// SetLevel changes the minimum level for all subsequent events.
func (l *Logger) SetLevel(name string) error {
	if l == nil {
		return nil
	}
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	l.level.Store(int32(level))
	return nil
}

// Level returns the current minimum level.
func (l *Logger) Level() zerolog.Level {
	if l == nil {
		return zerolog.Disabled
	}
	return zerolog.Level(l.level.Load())
}

// Zerolog returns the underlying logger at the current level.
func (l *Logger) Zerolog() zerolog.Logger {
	if l == nil {
		return zerolog.Nop()
	}
	return l.base.Level(l.Level())
}

func (l *Logger) Debug() *zerolog.Event { zl := l.Zerolog(); return zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { zl := l.Zerolog(); return zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { zl := l.Zerolog(); return zl.Warn() }
func (l *Logger) Error() *zerolog.Event { zl := l.Zerolog(); return zl.Error() }

// Debugf adapts the logger to printf-style debug hooks.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Debug().Msgf(format, args...)
}

// Close closes the log file, if any.
// Safe to call on a nil logger or one without a file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
