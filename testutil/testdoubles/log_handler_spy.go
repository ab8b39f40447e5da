package testdoubles

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// LogHandlerSpy is a slog.Handler that captures log records for testing.
type LogHandlerSpy struct {
	records     []slog.Record
	mu          sync.Mutex
	logToStdout bool
}

// NewLogHandlerSpy creates a new LogHandlerSpy.
// Switchable to also log to stdout, which helps when debugging a test.
func NewLogHandlerSpy(logToStdout bool) *LogHandlerSpy {
	return &LogHandlerSpy{
		records:     make([]slog.Record, 0),
		logToStdout: logToStdout,
	}
}

// Handle implements slog.Handler.
func (h *LogHandlerSpy) Handle(ctx context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, record.Clone())

	if h.logToStdout {
		_ = slog.NewJSONHandler(os.Stdout, nil).Handle(ctx, record)
	}

	return nil
}

// Enabled implements slog.Handler.
func (h *LogHandlerSpy) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler. Attributes are not tracked.
func (h *LogHandlerSpy) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

// WithGroup implements slog.Handler. Groups are not tracked.
func (h *LogHandlerSpy) WithGroup(_ string) slog.Handler {
	return h
}

// RecordCount returns the number of captured records.
func (h *LogHandlerSpy) RecordCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.records)
}

// HasLog reports whether a record with the level and message was captured.
func (h *LogHandlerSpy) HasLog(level slog.Level, message string) bool {
	_, found := h.find(level, message)
	return found
}

// HasLogWithAttr reports whether a record with the level and message carries the attribute key.
func (h *LogHandlerSpy) HasLogWithAttr(level slog.Level, message, key string) bool {
	record, found := h.find(level, message)
	if !found {
		return false
	}

	hasAttr := false
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == key {
			hasAttr = true
			return false
		}

		return true
	})

	return hasAttr
}

// AttrValue returns the value of key in the first record with the level and message.
func (h *LogHandlerSpy) AttrValue(level slog.Level, message, key string) (slog.Value, bool) {
	record, found := h.find(level, message)
	if !found {
		return slog.Value{}, false
	}

	var (
		value    slog.Value
		hasValue bool
	)

	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == key {
			value, hasValue = attr.Value, true
			return false
		}

		return true
	})

	return value, hasValue
}

// Reset clears all captured records.
func (h *LogHandlerSpy) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = h.records[:0]
}

func (h *LogHandlerSpy) find(level slog.Level, message string) (slog.Record, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, record := range h.records {
		if record.Level == level && record.Message == message {
			return record, true
		}
	}

	return slog.Record{}, false
}
