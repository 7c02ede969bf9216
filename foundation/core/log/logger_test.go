// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, context fields, derived loggers and
//              severity-aware error logging.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-19 v0.2.0: Rewritten for the synchronous logger

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	minaerror "github.com/msto63/mina/foundation/core/error"
)

func newTestLogger(buf *bytes.Buffer, level Level) *Logger {
	return NewWithConfig(Config{Level: level, Format: FormatJSON, Output: buf})
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		want  int
	}{
		{"trace logs everything", LevelTrace, 5},
		{"info drops trace and debug", LevelInfo, 3},
		{"error keeps only error", LevelError, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newTestLogger(&buf, tt.level)
			l.Trace("t")
			l.Debug("d")
			l.Info("i")
			l.Warn("w")
			l.Error("e")

			if got := len(decodeLines(t, &buf)); got != tt.want {
				t.Errorf("logged %d entries, want %d", got, tt.want)
			}
		})
	}
}

func TestLoggerContextFields(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf, LevelDebug)
	l := base.WithField("component", "lexer").WithName("mina")

	l.Debug("token", Fields{"kind": "IDENT"})
	base.Debug("plain")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["component"] != "lexer" || lines[0]["kind"] != "IDENT" || lines[0]["logger"] != "mina" {
		t.Errorf("unexpected first entry: %v", lines[0])
	}
	if _, ok := lines[1]["component"]; ok {
		t.Error("derived logger leaked its fields into the parent")
	}
}

func TestLoggerLogErrorUsesSeverity(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"low severity logs info", minaerror.New("bad input").WithCode(minaerror.CodeSyntax), "info"},
		{"medium severity logs warn", minaerror.New("bad config").WithCode(minaerror.CodeInvalidConfig), "warn"},
		{"critical severity logs error", minaerror.New("no action").WithCode(minaerror.CodeInternalInconsistency), "error"},
		{"plain error logs error", errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newTestLogger(&buf, LevelTrace).LogError(tt.err)
			lines := decodeLines(t, &buf)
			if len(lines) != 1 {
				t.Fatalf("got %d lines, want 1", len(lines))
			}
			if lines[0]["level"] != tt.level {
				t.Errorf("level = %v, want %s", lines[0]["level"], tt.level)
			}
		})
	}
}

func TestLoggerLogErrorFields(t *testing.T) {
	var buf bytes.Buffer
	err := minaerror.New("no action").
		WithCode(minaerror.CodeInternalInconsistency).
		WithOperation("parser.Parse").
		WithDetail("state", 4)
	newTestLogger(&buf, LevelTrace).LogError(err)

	line := decodeLines(t, &buf)[0]
	if line["error_code"] != "INTERNAL_INCONSISTENCY" {
		t.Errorf("error_code = %v", line["error_code"])
	}
	if line["error_operation"] != "parser.Parse" {
		t.Errorf("error_operation = %v", line["error_operation"])
	}
	if line["error_state"] != float64(4) {
		t.Errorf("error_state = %v", line["error_state"])
	}
}

func TestLoggerLogErrorNil(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf, LevelTrace).LogError(nil)
	if buf.Len() != 0 {
		t.Errorf("LogError(nil) wrote %q", buf.String())
	}
}

func TestLoggerCaller(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf, LevelInfo).WithCaller(0).Info("here")
	line := decodeLines(t, &buf)[0]
	caller, _ := line["caller"].(string)
	if !strings.HasPrefix(caller, "logger_test.go:") {
		t.Errorf("caller = %q, want logger_test.go:<line>", caller)
	}
}

func TestLoggerConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sub := l.WithField("worker", n)
			for j := 0; j < 25; j++ {
				sub.Info("tick")
			}
		}(i)
	}
	wg.Wait()

	if got := len(decodeLines(t, &buf)); got != 200 {
		t.Errorf("logged %d entries, want 200", got)
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	if l.IsLevelEnabled(LevelError) {
		t.Error("Discard logger should not enable any level")
	}
	l.Error("dropped")
}

func TestDefaultLogger(t *testing.T) {
	orig := GetDefault()
	defer SetDefault(orig)

	var buf bytes.Buffer
	SetDefault(newTestLogger(&buf, LevelInfo))
	GetDefault().Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("default logger output = %q", buf.String())
	}
}
