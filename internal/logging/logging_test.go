package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"Warning", LevelWarn, false},
		{"warn", LevelWarn, false},
		{" error ", LevelError, false},
		{"loud", LevelInfo, true},
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

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "debug", LevelDebug.String())
	assert.Equal(t, "error", LevelError.String())
	assert.Equal(t, "unknown", Level(9).String())
	assert.Equal(t, zapcore.WarnLevel, LevelWarn.ZapLevel())
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf, Name: "storefront"})
	require.NoError(t, err)

	Component(logger, "store").Info("basket changed", zap.Int("count", 2))
	logger.Debug("hidden")
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "basket changed", entry["msg"])
	assert.Equal(t, "storefront.store", entry["logger"])
	assert.Equal(t, "store", entry["component"])
	assert.Equal(t, float64(2), entry["count"])
}

func TestNew_AtomicLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, level, err := New(Config{Level: LevelWarn, Output: &buf})
	require.NoError(t, err)

	logger.Info("first")
	assert.Empty(t, buf.String())

	require.NoError(t, SetLevel(level, "debug"))
	logger.Debug("second")
	assert.Contains(t, buf.String(), "second")

	assert.Error(t, SetLevel(level, "nope"))
	assert.Equal(t, zapcore.DebugLevel, level.Level())
}

func TestNew_UnknownFormat(t *testing.T) {
	_, _, err := New(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestComponent_NilLogger(t *testing.T) {
	assert.NotNil(t, Component(nil, "x"))
}
