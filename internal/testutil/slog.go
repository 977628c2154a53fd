// Package testutil provides shared helpers for tests, chiefly an slog
// handler that captures records in memory so tests can assert on what the
// pipeline logged.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is one captured log record
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// CaptureHandler is an slog.Handler that buffers records for inspection
type CaptureHandler struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewTestLogger returns a logger backed by a capture handler
func NewTestLogger(t *testing.T) (*slog.Logger, *CaptureHandler) {
	t.Helper()
	handler := &CaptureHandler{}
	return slog.New(handler), handler
}

func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

func (h *CaptureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *CaptureHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *CaptureHandler) WithGroup(_ string) slog.Handler { return h }

// Records returns a copy of the captured records
func (h *CaptureHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(h.records))
	copy(out, h.records)
	return out
}

// RecordsByLevel returns the captured records at the given level
func (h *CaptureHandler) RecordsByLevel(level slog.Level) []LogRecord {
	var filtered []LogRecord
	for _, r := range h.Records() {
		if r.Level == level {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ContainsMessage reports whether any record's message contains message
func (h *CaptureHandler) ContainsMessage(message string) bool {
	for _, r := range h.Records() {
		if strings.Contains(r.Message, message) {
			return true
		}
	}
	return false
}

// ContainsAttr reports whether any record carries the given attribute
func (h *CaptureHandler) ContainsAttr(key string, value any) bool {
	for _, r := range h.Records() {
		if v, ok := r.Attrs[key]; ok && v == value {
			return true
		}
	}
	return false
}
