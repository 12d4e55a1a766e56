package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerWritesText(t *testing.T) {
	defer Level.Set(slog.LevelInfo)

	var buf bytes.Buffer

	l := NewWithWriter(&buf).With(slog.String("component", "suite"))
	l.Infof("case %s done", "EUR-OIS")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, `msg="case EUR-OIS done"`)
	assert.Contains(t, out, "component=suite")
	assert.NotContains(t, out, "hidden")

	buf.Reset()
	Level.SetByName("debug")
	l.Debug("shown")
	assert.Contains(t, buf.String(), "level=debug")

	buf.Reset()
	Level.SetByName("error")
	l.Warning("dropped")
	l.Error("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "level=error")
}

func TestSetByNameIgnoresUnknown(t *testing.T) {
	defer Level.Set(slog.LevelInfo)

	Level.Set(slog.LevelWarn)
	Level.SetByName("verbose")
	assert.True(t, Level.Enabled(slog.LevelWarn))
	assert.False(t, Level.Enabled(slog.LevelInfo))
}

func TestNilAndDiscardLoggers(t *testing.T) {
	var l *Logger
	assert.Nil(t, l.With("a", 1))

	assert.NotPanics(t, func() {
		Discard().Error("nothing")
		Discard().With("k", "v").Infof("%d", 1)
	})
}

func sourceLogger(buf *bytes.Buffer, callDepth int) *Logger {
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{AddSource: true})

	return &Logger{sl: slog.New(withCallDepth(callDepth, h))}
}

func TestCallDepthPointsAtCaller(t *testing.T) {
	var buf bytes.Buffer

	sourceLogger(&buf, 4).Infof("method %d", 1)
	assert.Contains(t, buf.String(), "logger_test.go")

	buf.Reset()

	saved := defaultLogger
	defaultLogger = sourceLogger(&buf, 5)

	defer func() { defaultLogger = saved }()

	Infof("package %d", 2)
	Warning("package")
	assert.Contains(t, buf.String(), `msg="package 2"`)
	assert.NotContains(t, buf.String(), "logger.go:")
	assert.Equal(t, 2, strings.Count(buf.String(), "logger_test.go"))
}
