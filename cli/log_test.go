package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ardnew/marmoset/log"
)

func TestBoolFlag(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		assigned bool
		want     bool
		ok       bool
	}{
		{"--log-pretty", "", false, true, true},
		{"--no-log-pretty", "", false, false, true},
		{"--log-pretty", "false", true, false, true},
		{"--no-log-pretty", "false", true, true, true},
		{"--log-pretty", "maybe", true, false, false},
	}

	for _, tt := range tests {
		got, ok := boolFlag(tt.name, tt.value, tt.assigned)
		assert.Equal(t, tt.ok, ok, "%s=%s", tt.name, tt.value)
		assert.Equal(t, tt.want, got, "%s=%s", tt.name, tt.value)
	}
}

func TestLogScan(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithLevel(log.LevelInfo), log.WithFormat(log.FormatText), log.WithPretty(true)) })

	f := logConfig{Pretty: true}
	f.scan([]string{
		"--log-level", "debug",
		"--no-log-pretty",
		"--log-format=json",
		"eval", "--", "--log-caller",
	})

	assert.Equal(t, logLevel("debug"), f.Level)
	assert.Equal(t, logFormat("json"), f.Format)
	assert.False(t, f.Pretty)
	assert.False(t, f.Caller)
	assert.Equal(t, log.LevelDebug, log.Default().Level())
}

func TestLogScanFlagOperand(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithLevel(log.LevelInfo)) })

	var f logConfig

	// A following flag is not consumed as the level.
	f.scan([]string{"--log-level", "--log-caller"})

	assert.Equal(t, logLevel(""), f.Level)
	assert.True(t, f.Caller)
}
