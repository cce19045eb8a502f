package loghandler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestCompactHandler_TagAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(&buf, slog.LevelInfo))

	logger.Info("round played", "tag", "cli", "outcome", "win", "total", 4)

	line := buf.String()
	if !strings.HasSuffix(line, "[cli] round played outcome=win total=4\n") {
		t.Errorf("unexpected line: %q", line)
	}
	if strings.Contains(line, "tag=") {
		t.Errorf("tag should not be repeated as key=value: %q", line)
	}
	if strings.Contains(line, "INFO") {
		t.Errorf("info level should not be written: %q", line)
	}
}

func TestCompactHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(&buf, slog.LevelWarn))

	logger.Info("hidden")
	logger.Debug("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}

	logger.Warn("store unavailable", "tag", "storage")
	if !strings.Contains(buf.String(), "WARN [storage] store unavailable") {
		t.Errorf("unexpected warn line: %q", buf.String())
	}
}

func TestCompactHandler_WithAttrsCarriesTag(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(&buf, slog.LevelInfo)).With("tag", "ws", "session", "abc")

	logger.Info("client connected")

	line := buf.String()
	if !strings.Contains(line, "[ws] client connected session=abc") {
		t.Errorf("unexpected line: %q", line)
	}
}

func TestCompactHandler_QuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(&buf, slog.LevelInfo))

	logger.Info("failed", "err", "connection refused", "empty", "")

	line := buf.String()
	if !strings.Contains(line, `err="connection refused"`) {
		t.Errorf("expected quoted err value: %q", line)
	}
	if !strings.Contains(line, `empty=""`) {
		t.Errorf("expected quoted empty value: %q", line)
	}
}

func TestCompactHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(&buf, slog.LevelInfo)).WithGroup("tally")

	logger.Info("saved", "wins", 2, slog.Group("rate", "win", "50.0%"))

	line := buf.String()
	if !strings.Contains(line, "tally.wins=2") {
		t.Errorf("expected group prefix: %q", line)
	}
	if !strings.Contains(line, "tally.rate.win=50.0%") {
		t.Errorf("expected nested group prefix: %q", line)
	}
}
