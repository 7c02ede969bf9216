// File: errors.go
// Title: Lexical Errors and Policy
// Description: The LexicalError value reported for unmatched input and the
//              policy that decides whether scanning continues after one.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package lexer

import (
	"fmt"
	"strings"

	"github.com/msto63/mina/foundation/mina/token"
)

// LexicalError reports input that no rule matches
type LexicalError struct {
	Text string
	Span token.Span
}

// Error implements the error interface
func (e *LexicalError) Error() string {
	return fmt.Sprintf("unrecognized character %q at %s", e.Text, e.Span.Start)
}

// Policy decides how the lexer continues after a LexicalError
type Policy int

const (
	// PolicySkip drops the offending code point and keeps scanning
	PolicySkip Policy = iota

	// PolicyHalt stops scanning at the offending code point
	PolicyHalt
)

// String returns the configuration name of the policy
func (p Policy) String() string {
	switch p {
	case PolicySkip:
		return "skip"
	case PolicyHalt:
		return "halt"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "skip" or "halt"
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return PolicySkip, nil
	case "halt":
		return PolicyHalt, nil
	default:
		return PolicySkip, fmt.Errorf("unknown lexical policy %q (want skip or halt)", s)
	}
}
