package testutil

import (
	"io"
	"log/slog"
	"time"
)

// NopLogger returns a logger that discards all output.
// Use this in tests to avoid log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// FixedTime is the reference instant used by mock clocks in tests
var FixedTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
