package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	minalog "github.com/msto63/mina/foundation/core/log"
)

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("mina")

	if cfg.Name != "mina" {
		t.Errorf("Name = %v, want mina", cfg.Name)
	}
	if cfg.Level != "warn" {
		t.Errorf("Level = %v, want warn", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %v, want text", cfg.Format)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected minalog.Level
	}{
		{"trace", minalog.LevelTrace},
		{"debug", minalog.LevelDebug},
		{"info", minalog.LevelInfo},
		{"warn", minalog.LevelWarn},
		{"warning", minalog.LevelWarn},
		{"error", minalog.LevelError},
		{"invalid", minalog.LevelWarn}, // defaults to warn
		{"", minalog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Name:   "mina-test",
		Level:  "debug",
		Format: "json",
		Output: &buf,
	})

	logger.Trace("dropped")
	logger.Debug("kept", minalog.Fields{"tokens": 3})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid JSON line %q: %v", lines[0], err)
	}
	if entry["message"] != "kept" {
		t.Errorf("Expected message kept, got %v", entry["message"])
	}
	if entry["logger"] != "mina-test" {
		t.Errorf("Expected logger mina-test, got %v", entry["logger"])
	}
	if entry["tokens"] != float64(3) {
		t.Errorf("Expected tokens 3, got %v", entry["tokens"])
	}
}

func TestNewLogger_AdditionalOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:             "info",
		Format:            "text",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})

	logger.Info("parse rejected")

	if !strings.Contains(primary.String(), "parse rejected") {
		t.Errorf("Expected primary output to contain the message, got %q", primary.String())
	}
	if primary.String() != extra.String() {
		t.Errorf("Expected identical outputs, got %q and %q", primary.String(), extra.String())
	}
}

func TestNewLogger_UnknownFormatFallsBackToText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: "info", Format: "xml", Output: &buf})

	logger.Info("hello")

	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("Expected text output, got %q", buf.String())
	}
}

func TestNewSimpleLogger(t *testing.T) {
	logger := NewSimpleLogger("mina")
	if logger == nil {
		t.Fatal("NewSimpleLogger() returned nil")
	}
	if logger.GetLevel() != minalog.LevelWarn {
		t.Errorf("Expected level warn, got %v", logger.GetLevel())
	}
}
