package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLogLines(t *testing.T, stateDir string) []map[string]any {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(stateDir, "debug.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}

	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if raw == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q: %v", raw, err)
		}
		lines = append(lines, entry)
	}
	return lines
}

func TestNewLogger_WritesJSONToFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, "INFO")
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Info("fetched bin", "tasks", 3)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	lines := readLogLines(t, dir)
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1", len(lines))
	}
	if lines[0]["msg"] != "fetched bin" {
		t.Errorf("msg = %v, want %q", lines[0]["msg"], "fetched bin")
	}
	if lines[0]["tasks"] != float64(3) {
		t.Errorf("tasks = %v, want 3", lines[0]["tasks"])
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, "WARN")
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")
	logger.Close()

	lines := readLogLines(t, dir)
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2 (warn+error)", len(lines))
	}
}

func TestLogger_WithComponent(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, "DEBUG")
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	child := logger.WithComponent("store")
	child.Info("overwrite complete")
	logger.Info("no component here")
	logger.Close()

	lines := readLogLines(t, dir)
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2", len(lines))
	}
	if lines[0]["component"] != "store" {
		t.Errorf("child line component = %v, want %q", lines[0]["component"], "store")
	}
	if _, ok := lines[1]["component"]; ok {
		t.Error("parent logger should not carry the child's component attribute")
	}
}

func TestLogger_With(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, "DEBUG")
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.With("bin", "abc123", "op", "fetch").Info("starting")
	logger.Close()

	lines := readLogLines(t, dir)
	if lines[0]["bin"] != "abc123" || lines[0]["op"] != "fetch" {
		t.Errorf("persistent attrs missing: %v", lines[0])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	// Must not panic and must be closeable.
	logger.Info("discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
