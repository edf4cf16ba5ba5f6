// Package testutil holds small helpers shared by tests across packages.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// LogRecord is one captured log record.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// BufferedSlogHandler captures log records so tests can assert on them.
type BufferedSlogHandler struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewBufferedSlogHandler creates a capturing handler.
func NewBufferedSlogHandler() *BufferedSlogHandler {
	return &BufferedSlogHandler{}
}

// Logger returns a logger writing into the handler.
func (h *BufferedSlogHandler) Logger() *slog.Logger {
	return slog.New(h)
}

// Handle implements slog.Handler.
func (h *BufferedSlogHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	h.records = append(h.records, LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	h.mu.Unlock()
	return nil
}

// Enabled implements slog.Handler; tests capture every level.
func (h *BufferedSlogHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler.
func (h *BufferedSlogHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

// WithGroup implements slog.Handler.
func (h *BufferedSlogHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Records returns a copy of the captured records.
func (h *BufferedSlogHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]LogRecord, len(h.records))
	copy(out, h.records)
	return out
}

// ContainsMessage reports whether any record's message contains s.
func (h *BufferedSlogHandler) ContainsMessage(s string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, r := range h.records {
		if strings.Contains(r.Message, s) {
			return true
		}
	}
	return false
}
