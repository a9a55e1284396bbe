package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithBindsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	zapLog = zap.New(core)
	t.Cleanup(func() { zapLog = zap.NewNop() })

	With(zap.String("run_id", "abc"))
	Debug("hidden")
	Info("hello", zap.Int("genes", 3))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].Message)
	assert.Equal(t, "abc", entries[0].ContextMap()["run_id"])
	assert.Equal(t, int64(3), entries[0].ContextMap()["genes"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"WARN", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNopBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() { Warn("nobody listens") })
}
