// Package error provides structured error handling for the Mina front-end.
//
// Package: error
// Title: Mina Structured Errors
// Description: Implements an error type with codes, severity, operation and
//              detail metadata plus a captured stack trace. User-facing lexical
//              and syntax diagnostics are plain data in the parser package; this
//              package covers the faults around them: configuration, storage,
//              codec problems and internal grammar-table inconsistencies.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-19 v0.2.0: Reduced code set to the front-end domain, dropped i18n/user context
//
// Usage:
//
//	err := minaerror.New("goto entry missing").
//		WithCode(minaerror.CodeInternalInconsistency).
//		WithOperation("parser.Parse").
//		WithDetail("state", 17)
//
//	if minaerror.HasCode(err, minaerror.CodeInternalInconsistency) {
//		// abort the current input unit
//	}
package error
