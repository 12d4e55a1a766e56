// Package logger is a thin log/slog wrapper. Terminals get colored output via
// tint; anything else gets logfmt-style text on stderr.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// Logger wraps a slog.Logger with printf-style helpers.
type Logger struct {
	sl *slog.Logger
}

// New returns a logger writing to stderr.
func New() *Logger {
	// skip 2 slog pkg calls, 2 this pkg calls
	return newStderr(4)
}

func newStderr(callDepth int) *Logger {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return &Logger{sl: slog.New(withCallDepth(callDepth, newTerminalHandler(os.Stderr)))}
	}

	return &Logger{sl: slog.New(newTextHandler(os.Stderr))}
}

// NewWithWriter returns a logger writing plain text to w.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{sl: slog.New(newTextHandler(w))}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{sl: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: levelDisable}))}
}

// With returns a logger carrying extra attributes.
func (l *Logger) With(args ...any) *Logger {
	if l.isNil() {
		return nil
	}

	return &Logger{sl: l.sl.With(args...)}
}

func (l *Logger) Error(a ...any)   { l.log(slog.LevelError, fmt.Sprint(a...)) }
func (l *Logger) Warning(a ...any) { l.log(slog.LevelWarn, fmt.Sprint(a...)) }
func (l *Logger) Info(a ...any)    { l.log(slog.LevelInfo, fmt.Sprint(a...)) }
func (l *Logger) Debug(a ...any)   { l.log(slog.LevelDebug, fmt.Sprint(a...)) }

func (l *Logger) Errorf(format string, a ...any)   { l.log(slog.LevelError, fmt.Sprintf(format, a...)) }
func (l *Logger) Warningf(format string, a ...any) { l.log(slog.LevelWarn, fmt.Sprintf(format, a...)) }
func (l *Logger) Infof(format string, a ...any)    { l.log(slog.LevelInfo, fmt.Sprintf(format, a...)) }
func (l *Logger) Debugf(format string, a ...any)   { l.log(slog.LevelDebug, fmt.Sprintf(format, a...)) }

func (l *Logger) log(level slog.Level, msg string) {
	if l.isNil() {
		nilLogger.sl.Log(context.Background(), level, msg)

		return
	}

	l.sl.Log(context.Background(), level, msg)
}

func (l *Logger) isNil() bool { return l == nil || l.sl == nil }

var (
	// skip 2 slog pkg calls, 3 this pkg calls
	defaultLogger = newStderr(5)
	// receives calls made on a nil *Logger, which skip the package-level frame
	nilLogger = New()
)

func Error(a ...any)                   { defaultLogger.Error(a...) }
func Warning(a ...any)                 { defaultLogger.Warning(a...) }
func Info(a ...any)                    { defaultLogger.Info(a...) }
func Debug(a ...any)                   { defaultLogger.Debug(a...) }
func Errorf(format string, a ...any)   { defaultLogger.Errorf(format, a...) }
func Warningf(format string, a ...any) { defaultLogger.Warningf(format, a...) }
func Infof(format string, a ...any)    { defaultLogger.Infof(format, a...) }
func Debugf(format string, a ...any)   { defaultLogger.Debugf(format, a...) }
func With(args ...any) *Logger         { return defaultLogger.With(args...) }
