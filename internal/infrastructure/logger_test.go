package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLogLevel(tt.input), "level %q", tt.input)
	}
}

func TestTraceHandler_InjectsTraceID(t *testing.T) {
	var buf bytes.Buffer
	handler := &traceHandler{Handler: slog.NewJSONHandler(&buf, nil)}
	logger := slog.New(handler)

	ctx := WithTraceID(context.Background(), "trace-123")
	logger.InfoContext(ctx, "hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trace-123", entry["trace_id"])
}

func TestTraceHandler_NoTraceID(t *testing.T) {
	var buf bytes.Buffer
	handler := &traceHandler{Handler: slog.NewJSONHandler(&buf, nil)}
	logger := slog.New(handler)

	logger.InfoContext(context.Background(), "hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, present := entry["trace_id"]
	assert.False(t, present)
}

func TestGetTraceID(t *testing.T) {
	assert.Equal(t, "", GetTraceID(context.Background()))
	ctx := WithTraceID(context.Background(), "abc")
	assert.Equal(t, "abc", GetTraceID(ctx))
}

func TestLoggerFromContext(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	require.NotNil(t, logger)
}
