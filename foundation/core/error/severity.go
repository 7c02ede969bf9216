// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so that logging and the CLI
//              can decide how loudly to report a failure.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-19 v0.2.0: Severity mapping for front-end codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a problem with the caller's input
	SeverityLow Severity = iota

	// SeverityMedium indicates an operational problem that has a workaround
	SeverityMedium

	// SeverityHigh indicates a failed dependency such as the artifact database
	SeverityHigh

	// SeverityCritical indicates a defect in the recognizer itself
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternalInconsistency, CodeGrammarConflict, CodeInvalidGrammar, CodeInvalidLexRule:
		return SeverityCritical

	case CodeDatabaseError, CodeInternal:
		return SeverityHigh

	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig,
		CodeSchemaMismatch, CodeDecodeFailed:
		return SeverityMedium

	case CodeInvalidInput, CodeNotFound, CodeInputTooLong, CodeSyntax:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
