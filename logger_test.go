package starfield

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should discard everything")
	}
	// Must not panic.
	Logger().Info("dropped", "k", 1)
	Logger().With("a", 1).WithGroup("g").Warn("dropped")
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Logger().Info("hello", "star", 2)
	if !bytes.Contains(buf.Bytes(), []byte("star=2")) {
		t.Errorf("log output = %q", buf.String())
	}
}
