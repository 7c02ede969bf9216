// File: timer.go
// Title: Performance Timer
// Description: Measures an operation and logs its duration on completion.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with performance timing
// - 2026-10-19 v0.2.0: Collapsed result variants into Stop and StopWithError

package log

import (
	"time"
)

// Timer represents a performance timer for measuring operation duration
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the elapsed time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Stop stops the timer and logs the elapsed time. A second call returns 0.
func (t *Timer) Stop() time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()

	if t.logger != nil {
		t.logger.log(t.level, t.operation+" completed", nil, t.completionFields(elapsed))
	}
	return elapsed
}

// StopWithError stops the timer and logs err with the elapsed time
func (t *Timer) StopWithError(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()

	if t.logger != nil {
		fields := t.completionFields(elapsed)
		fields["success"] = false
		t.logger.log(LevelError, t.operation+" failed", err, fields)
	}
	return elapsed
}

// Checkpoint logs an intermediate timing at debug level
func (t *Timer) Checkpoint(name string, fields ...Fields) {
	if t.stopped || t.logger == nil {
		return
	}
	combined := t.fields.Merge(Fields{
		"operation":  t.operation,
		"checkpoint": name,
		"elapsed_ms": float64(t.Elapsed().Nanoseconds()) / 1e6,
	})
	for _, f := range fields {
		combined = combined.Merge(f)
	}
	t.logger.log(LevelDebug, t.operation+" checkpoint: "+name, nil, combined)
}

// Cancel stops the timer without logging
func (t *Timer) Cancel() {
	t.stopped = true
}

// IsRunning returns true if the timer is still running
func (t *Timer) IsRunning() bool {
	return !t.stopped
}

func (t *Timer) completionFields(elapsed time.Duration) Fields {
	return t.fields.Merge(Fields{
		"operation":   t.operation,
		"duration_ms": float64(elapsed.Nanoseconds()) / 1e6,
	})
}
