// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across the Mina front-end so that
//              callers can classify failures without matching on messages.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Replaced platform codes with front-end codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Front-end codes
	CodeInputTooLong          Code = "INPUT_TOO_LONG"
	CodeInvalidLexRule        Code = "INVALID_LEX_RULE"
	CodeInvalidGrammar        Code = "INVALID_GRAMMAR"
	CodeGrammarConflict       Code = "GRAMMAR_CONFLICT"
	CodeInternalInconsistency Code = "INTERNAL_INCONSISTENCY"
	CodeSyntax                Code = "SYNTAX"

	// Serialization
	CodeSchemaMismatch Code = "SCHEMA_MISMATCH"
	CodeDecodeFailed   Code = "DECODE_FAILED"

	// Storage
	CodeDatabaseError Code = "DATABASE_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeInputTooLong, CodeInvalidLexRule, CodeInvalidGrammar, CodeGrammarConflict,
		CodeInternalInconsistency, CodeSyntax,
		CodeSchemaMismatch, CodeDecodeFailed,
		CodeDatabaseError,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeInputTooLong, CodeSyntax:
		return "input"
	case CodeInvalidLexRule, CodeInvalidGrammar, CodeGrammarConflict, CodeInternalInconsistency:
		return "recognizer"
	case CodeSchemaMismatch, CodeDecodeFailed:
		return "serialization"
	case CodeDatabaseError:
		return "storage"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// ExitCode maps an error code to a process exit status for the CLI.
// User input problems exit with 1, recognizer defects with 3, everything else with 2.
func (c Code) ExitCode() int {
	switch c.Category() {
	case "input":
		return 1
	case "recognizer":
		return 3
	default:
		return 2
	}
}
