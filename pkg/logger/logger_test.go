package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Init("warn")
	Infof("hidden %d", 1)
	Warnf("visible %d", 2)

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Fatalf("info line should have been filtered: %q", got)
	}
	if !strings.Contains(got, "visible 2") {
		t.Fatalf("warn line missing: %q", got)
	}
	if !strings.Contains(got, "[WARN]") {
		t.Fatalf("level header missing: %q", got)
	}
}

func TestInitAndLevelString(t *testing.T) {
	Init("debug")
	if LevelString() != "debug" {
		t.Fatalf("unexpected level: %s", LevelString())
	}
	Init("bogus")
	if LevelString() != "info" {
		t.Fatalf("expected fallback to info, got %s", LevelString())
	}
}
