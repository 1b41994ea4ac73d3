// Package testutil holds helpers shared by tests.
package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// Logger returns a debug-level logger that writes through tb.Log, so its
// output only appears for failed or verbose tests.
func Logger(tb testing.TB) *slog.Logger {
	return slog.New(slog.NewTextHandler(tbWriter{tb}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type tbWriter struct {
	tb testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// CaptureLogger returns an info-level logger and the buffer holding its records.
func CaptureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}
