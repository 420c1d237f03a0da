package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogLoggerWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	log.Info(context.Background(), "entry created", "id", "abc123")

	out := buf.String()
	if !strings.Contains(out, "entry created") {
		t.Errorf("missing message: %s", out)
	}
	if !strings.Contains(out, "id=abc123") {
		t.Errorf("missing attribute: %s", out)
	}
}

func TestWithAddsPersistentAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil))).With("component", "store")

	log.Warn(context.Background(), "slow write")

	if !strings.Contains(buf.String(), "component=store") {
		t.Errorf("missing persistent attribute: %s", buf.String())
	}
}

func TestDiscardDoesNotPanic(t *testing.T) {
	log := Discard()
	log.Info(context.Background(), "dropped")
	log.Error(context.Background(), "also dropped", "err", "x")
}
