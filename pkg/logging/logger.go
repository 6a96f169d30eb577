// Package logging provides structured logging for the research assistant server.
//
// The server's stdout is reserved for the MCP stdio transport, so every
// log destination here defaults to stderr. Logger wraps slog.Logger with
// an optional file sink and a "service" attribute that's stamped on every
// record, which is how downstream log aggregation tells components apart.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level is the minimum severity a Logger will emit. It mirrors slog's own
// ordering (Debug < Info < Warn < Error) without exposing slog types to
// callers that only ever need to configure a level from an env var.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) toSlog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps common spellings ("debug", "INFO", ...) to a Level,
// defaulting to LevelInfo for anything unrecognized.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Config configures a Logger. The zero Level is LevelDebug, so the zero
// value logs Debug+ as JSON to stderr; Default uses LevelInfo instead.
type Config struct {
	Level   Level
	Service string
	LogDir  string // when set, logs are additionally written to {LogDir}/{Service}.log
	Quiet   bool   // when true, stderr output is suppressed (file sink only)
}

// Logger is a thin, concurrency-safe wrapper around slog.Logger that owns
// an optional file handle needing explicit Close.
type Logger struct {
	mu     sync.Mutex
	slog   *slog.Logger
	file   *os.File
	fields []slog.Attr
}

// New constructs a Logger per cfg. A non-empty LogDir is created (0750) if
// it does not already exist; failure to open the log file degrades to
// stderr-only logging rather than aborting startup.
func New(cfg Config) *Logger {
	var writers []io.Writer
	l := &Logger{}

	if !cfg.Quiet {
		writers = append(writers, os.Stderr)
	}

	if cfg.LogDir != "" {
		dir := expandHome(cfg.LogDir)
		if err := os.MkdirAll(dir, 0o750); err == nil {
			name := cfg.Service
			if name == "" {
				name = "research-assistant"
			}
			path := filepath.Join(dir, name+".log")
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640); err == nil {
				l.file = f
				writers = append(writers, f)
			}
		}
	}

	var dest io.Writer = io.Discard
	if len(writers) == 1 {
		dest = writers[0]
	} else if len(writers) > 1 {
		dest = io.MultiWriter(writers...)
	}

	handler := slog.NewJSONHandler(dest, &slog.HandlerOptions{Level: cfg.Level.toSlog()})
	var base *slog.Logger
	if cfg.Service != "" {
		base = slog.New(handler).With("service", cfg.Service)
	} else {
		base = slog.New(handler)
	}
	l.slog = base
	return l
}

// Default returns a Logger writing Info+ JSON to stderr with no service tag.
func Default() *Logger {
	return New(Config{Level: LevelInfo})
}

// With returns a child Logger that stamps every record with the given
// key/value pairs in addition to its parent's.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...), file: l.file}
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// Close flushes and closes the file sink, if any. Safe to call on a
// Logger with no file configured.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Elapsed is a small helper for the common "log how long an upstream call
// took" pattern used by every client in this repo.
func Elapsed(start time.Time) string {
	return fmt.Sprintf("%dms", time.Since(start).Milliseconds())
}
