package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
		wantErr  bool
	}{
		{input: "trace", expected: zerolog.TraceLevel},
		{input: "DEBUG", expected: zerolog.DebugLevel},
		{input: "", expected: zerolog.InfoLevel},
		{input: "warning", expected: zerolog.WarnLevel},
		{input: " error ", expected: zerolog.ErrorLevel},
		{input: "off", expected: zerolog.Disabled},
		{input: "loud", expected: zerolog.InfoLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestNewFromConfigValues(t *testing.T) {
	logger := NewFromConfigValues("debug", "json")
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())

	logger = NewFromConfigValues("nonsense", "xml")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.DebugLevel, Format: "json", Output: &buf})

	ctx := WithContext(context.Background(), logger)
	ctx = WithComponent(ctx, "dock")
	ctx = WithGroupID(ctx, "g1")
	ctx = WithPanelID(ctx, "p1")
	FromContext(ctx).Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dock", entry["component"])
	assert.Equal(t, "g1", entry["group_id"])
	assert.Equal(t, "p1", entry["panel_id"])
	assert.Equal(t, "hello", entry["message"])
}

func TestFromContext_NoLoggerIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		FromContext(context.Background()).Debug().Msg("dropped")
	})
}
