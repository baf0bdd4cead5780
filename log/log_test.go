package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroLoggerDiscards(t *testing.T) {
	var l Logger

	assert.False(t, l.Enabled(t.Context(), LevelError))
	assert.Equal(t, DefaultLevel, l.Level())
	assert.Equal(t, DefaultFormat, l.Format())
	assert.NotPanics(t, func() {
		l.TraceContext(t.Context(), "trace")
		l.Error("error", slog.Int("n", 1))
		l.With(slog.String("k", "v")).Info("info")
	})
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelWarn), WithPretty(false), WithTimeLayout("none"))

	l.Info("hidden")
	l.Debug("hidden")
	l.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=shown")
}

func TestTraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelTrace), WithPretty(false), WithTimeLayout("none"))
	l.TraceContext(t.Context(), "deep", slog.String("node", "infix"))

	assert.Equal(t, "level=TRACE msg=deep node=infix\n", buf.String())
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none")).
		With(slog.String("session", "s1"))
	l.Info("evaluated", slog.Int("statements", 3))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "evaluated", rec["msg"])
	assert.Equal(t, "s1", rec["session"])
	assert.InDelta(t, 3, rec["statements"], 0)
	assert.NotContains(t, rec, "time")
}

func TestWrapKeepsConfig(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelDebug))
	w := l.Wrap(WithLevel(LevelError))

	assert.Equal(t, LevelError, w.Level())
	assert.Equal(t, FormatJSON, w.Format())
	assert.Equal(t, LevelDebug, l.Level())
}

func TestPrettyHandler(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithTimeLayout("none")).
		With(slog.String("file", "a b.mar"))
	l.Warn("parse failed", slog.Group("pos", slog.Int("line", 2)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "WARN"), out)
	assert.Contains(t, out, "parse failed")
	assert.Contains(t, out, `file="a b.mar"`)
	assert.Contains(t, out, "pos.line=2")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestPrettyHandlerCaller(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithTimeLayout("none"), WithCaller(true))
	l.Info("here")

	assert.Contains(t, buf.String(), "log_test.go:")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{" warn ", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, DefaultFormat, ParseFormat("xml"))
}

func TestNames(t *testing.T) {
	var levels, formats []string
	for l := range Levels() {
		levels = append(levels, l)
	}

	for f := range Formats() {
		formats = append(formats, f)
	}

	assert.Equal(t, []string{"trace", "debug", "info", "warn", "error"}, levels)
	assert.Equal(t, []string{"text", "json"}, formats)
}

func TestTimeLayout(t *testing.T) {
	at := time.Date(2024, time.March, 5, 15, 4, 0, 0, time.UTC)

	assert.Empty(t, makeFormatTimeFunc("none")(at))
	assert.Empty(t, makeFormatTimeFunc("")(at))
	assert.Equal(t, "3:04PM", makeFormatTimeFunc("Kitchen")(at))
	assert.Equal(t, "2024-03-05 15:04:00", makeFormatTimeFunc("date-time")(at))
	assert.Equal(t, "2024/03/05", makeFormatTimeFunc("2006/01/02")(at))
}
