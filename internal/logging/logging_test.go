package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"taskpad/internal/logging"
)

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, false)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown", "key", "tasks")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "key=tasks") {
		t.Errorf("expected warn line with attributes, got %q", out)
	}
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logging.New(&buf, true).Debug("loaded", "count", 2)

	if !strings.Contains(buf.String(), "level=DEBUG") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	logger := logging.Discard()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected discard logger to be disabled at every level")
	}
}
