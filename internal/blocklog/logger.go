package blocklog

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Sink is the logging collaborator the engine depends on. It is kept
// deliberately narrow so the engine package never imports log/slog
// directly, mirroring how the original core took a logger pointer rather
// than reaching for a concrete singleton.
type Sink interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warning(msg string, args ...any)
	Error(msg string, args ...any)
	Critical(msg string, args ...any)
}

// Logger is the default Sink implementation, a thin wrapper over slog.
type Logger struct {
	inner *slog.Logger
}

// New builds a Logger writing to w at or above minLevel. Pass io.Discard
// to silence it entirely.
func New(w io.Writer, minLevel slog.Level) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       minLevel,
		ReplaceAttr: ReplaceLevelNames,
	})
	return &Logger{inner: slog.New(h)}
}

// NewConsole builds a Logger writing to stderr, the destination the CLI
// uses.
func NewConsole(minLevel slog.Level) *Logger {
	return New(os.Stderr, minLevel)
}

// NewMulti fans out to both a console and a file sink, matching the
// original's "console, file, or both" interactive choice.
func NewMulti(minLevel slog.Level, w ...io.Writer) *Logger {
	return New(io.MultiWriter(w...), minLevel)
}

func (l *Logger) Debug(msg string, args ...any)    { l.inner.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)     { l.inner.Info(msg, args...) }
func (l *Logger) Warning(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any)    { l.inner.Error(msg, args...) }
func (l *Logger) Critical(msg string, args ...any) {
	l.inner.Log(context.Background(), LevelCritical, msg, args...)
}

// Discard is a Sink that drops everything, used by tests that don't care
// about log output.
var Discard Sink = discard{}

type discard struct{}

func (discard) Debug(string, ...any)    {}
func (discard) Info(string, ...any)     {}
func (discard) Warning(string, ...any)  {}
func (discard) Error(string, ...any)    {}
func (discard) Critical(string, ...any) {}
