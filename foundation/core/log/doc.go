// Package log provides structured logging for the Mina language front-end.
//
// Package: log
// Title: Mina Structured Logging
// Description: Structured, leveled logging with persistent context fields,
//              JSON/text/console output and integration with the Mina error
//              type. Loggers are immutable values; every With* call returns a
//              derived logger so that components can be tagged once at
//              construction time.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-19 v0.2.0: Dropped async buffering and request context, sorted field output
//
// Usage:
//
//	import minalog "github.com/msto63/mina/foundation/core/log"
//
//	logger := minalog.New().
//	    WithLevel(minalog.LevelDebug).
//	    WithFormat(minalog.FormatText).
//	    WithField("component", "parser")
//
//	logger.Debug("reduce", minalog.Fields{"production": "Expr -> Expr PLUS Expr", "state": 17})
//
//	timer := logger.StartTimer("parse")
//	// ... parse
//	timer.Stop()
package log
