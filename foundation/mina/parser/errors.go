// File: errors.go
// Title: Parse Errors
// Description: SyntaxError, the ErrorList returned by failed parses and the
//              parse session states.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/msto63/mina/foundation/mina/lexer"
	"github.com/msto63/mina/foundation/mina/token"
)

// SyntaxError reports a token that is invalid in its grammatical context
type SyntaxError struct {
	Message  string
	Span     token.Span
	Expected []token.Kind
	Found    token.Token
}

// Error renders "<message> at <line>:<column>, expected one of {<names>}"
func (e *SyntaxError) Error() string {
	names := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		names[i] = k.Display()
	}
	return fmt.Sprintf("%s at %s, expected one of {%s}", e.Message, e.Span.Start, strings.Join(names, ", "))
}

// Expects reports whether k is in the expected set
func (e *SyntaxError) Expects(k token.Kind) bool {
	for _, x := range e.Expected {
		if x == k {
			return true
		}
	}
	return false
}

func unexpected(tok token.Token) string {
	switch {
	case tok.Kind == token.EOF:
		return "unexpected end of input"
	case tok.Kind.Lexeme() != "":
		return "unexpected " + tok.Kind.Display()
	default:
		return fmt.Sprintf("unexpected %s '%s'", tok.Kind, tok.Text)
	}
}

// ErrorList holds the errors of a rejected parse in detection order. Its
// elements are *lexer.LexicalError or *SyntaxError.
type ErrorList []error

// Error joins the rendered errors, one per line
func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, err := range l {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the elements to errors.Is and errors.As
func (l ErrorList) Unwrap() []error {
	return l
}

// SyntaxErrors returns the syntax errors only
func (l ErrorList) SyntaxErrors() []*SyntaxError {
	var out []*SyntaxError
	for _, err := range l {
		if se, ok := err.(*SyntaxError); ok {
			out = append(out, se)
		}
	}
	return out
}

// LexicalErrors returns the lexical errors only
func (l ErrorList) LexicalErrors() []*lexer.LexicalError {
	var out []*lexer.LexicalError
	for _, err := range l {
		if le, ok := err.(*lexer.LexicalError); ok {
			out = append(out, le)
		}
	}
	return out
}

// AsErrorList extracts an ErrorList from err
func AsErrorList(err error) (ErrorList, bool) {
	var l ErrorList
	if errors.As(err, &l) {
		return l, true
	}
	return nil, false
}

// State is the state of a parse session
type State int

const (
	Scanning State = iota
	Reducing
	ErrorRecovering
	Accepted
	Rejected
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case Reducing:
		return "reducing"
	case ErrorRecovering:
		return "error-recovering"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}
