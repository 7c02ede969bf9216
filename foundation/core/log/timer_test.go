// File: timer_test.go
// Title: Timer Tests
// Description: Tests for timer completion, failure and checkpoint logging.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-19 v0.2.0: Rewritten for Stop/StopWithError

package log

import (
	"bytes"
	"errors"
	"testing"
)

func TestTimerStop(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug)

	timer := l.StartTimer("parse").WithField("tokens", 12)
	if !timer.IsRunning() {
		t.Fatal("new timer should be running")
	}
	if d := timer.Stop(); d <= 0 {
		t.Errorf("Stop() = %v, want positive duration", d)
	}
	if d := timer.Stop(); d != 0 {
		t.Errorf("second Stop() = %v, want 0", d)
	}

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0]["message"] != "parse completed" || lines[0]["tokens"] != float64(12) {
		t.Errorf("unexpected entry: %v", lines[0])
	}
	if _, ok := lines[0]["duration_ms"]; !ok {
		t.Error("missing duration_ms")
	}
}

func TestTimerStopWithError(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug)

	l.StartTimer("decode").StopWithError(errors.New("truncated"))

	line := decodeLines(t, &buf)[0]
	if line["level"] != "error" || line["message"] != "decode failed" {
		t.Errorf("unexpected entry: %v", line)
	}
	if line["error"] != "truncated" || line["success"] != false {
		t.Errorf("unexpected error fields: %v", line)
	}
}

func TestTimerCheckpointAndCancel(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug)

	timer := l.StartTimer("build")
	timer.Checkpoint("lr0", Fields{"states": 40})
	timer.Cancel()
	timer.Checkpoint("ignored")
	if timer.Stop() != 0 {
		t.Error("Stop() after Cancel() should return 0")
	}

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0]["checkpoint"] != "lr0" || lines[0]["states"] != float64(40) {
		t.Errorf("unexpected checkpoint entry: %v", lines[0])
	}
}

func TestTimerLevelFiltered(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelInfo)
	l.StartTimer("quiet").Stop()
	if buf.Len() != 0 {
		t.Errorf("debug timer should be filtered at info, got %q", buf.String())
	}
}
