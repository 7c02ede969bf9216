// File: token.go
// Title: Mina Token Definitions
// Description: Terminal categories, source positions and the immutable Token
//              value produced by the lexer and consumed by the parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial token model

package token

import (
	"fmt"
)

// Kind represents the terminal category of a token
type Kind uint8

const (
	// Special kinds
	EOF     Kind = iota
	ILLEGAL      // no lexical rule matched
	ERROR        // recovery pseudo-terminal, never produced by the lexer

	// Skip kinds, filtered by the lexer
	WHITESPACE
	COMMENT

	// Keywords
	LET
	TRUE
	FALSE

	// Names and literals
	IDENT
	INT
	FLOAT
	STRING
	CHAR

	// Operators
	ASSIGN  // =
	EQ      // ==
	NE      // !=
	LT      // <
	LE      // <=
	GT      // >
	GE      // >=
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	COMMA     // ,
	SEMICOLON // ;

	kindCount
)

var kindNames = [kindCount]string{
	EOF:        "EOF",
	ILLEGAL:    "ILLEGAL",
	ERROR:      "error",
	WHITESPACE: "WHITESPACE",
	COMMENT:    "COMMENT",
	LET:        "LET",
	TRUE:       "TRUE",
	FALSE:      "FALSE",
	IDENT:      "IDENT",
	INT:        "INT",
	FLOAT:      "FLOAT",
	STRING:     "STRING",
	CHAR:       "CHAR",
	ASSIGN:     "ASSIGN",
	EQ:         "EQ",
	NE:         "NE",
	LT:         "LT",
	LE:         "LE",
	GT:         "GT",
	GE:         "GE",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	PERCENT:    "PERCENT",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	COMMA:      "COMMA",
	SEMICOLON:  "SEMICOLON",
}

// fixed lexemes for kinds whose text never varies
var kindLexemes = [kindCount]string{
	LET:       "let",
	TRUE:      "true",
	FALSE:     "false",
	ASSIGN:    "=",
	EQ:        "==",
	NE:        "!=",
	LT:        "<",
	LE:        "<=",
	GT:        ">",
	GE:        ">=",
	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	LPAREN:    "(",
	RPAREN:    ")",
	COMMA:     ",",
	SEMICOLON: ";",
}

// String returns the stable name of the kind
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Display returns the form used in diagnostics: the quoted lexeme for
// kinds with fixed text, the name otherwise.
func (k Kind) Display() string {
	if k < kindCount && kindLexemes[k] != "" {
		return "'" + kindLexemes[k] + "'"
	}
	return k.String()
}

// Lexeme returns the fixed text of the kind, or "" for variable kinds
func (k Kind) Lexeme() string {
	if k < kindCount {
		return kindLexemes[k]
	}
	return ""
}

// IsValid reports whether k is a defined kind
func (k Kind) IsValid() bool {
	return k < kindCount
}

// IsSkip reports whether tokens of this kind are filtered by the lexer
func (k Kind) IsSkip() bool {
	return k == WHITESPACE || k == COMMENT
}

// IsKeyword reports whether k is a reserved word
func (k Kind) IsKeyword() bool {
	return k >= LET && k <= FALSE
}

// IsLiteral reports whether k is a literal value kind
func (k Kind) IsLiteral() bool {
	return k >= INT && k <= CHAR || k == TRUE || k == FALSE
}

// Count returns the number of defined kinds; valid kinds are 0..Count()-1
func Count() int {
	return int(kindCount)
}

// Lookup returns the kind with the given name
func Lookup(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return ILLEGAL, false
}

// Pos is a position in the input. Offset is a 0-based byte offset, Line and
// Column are 1-based; Column counts code points.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// String renders the position as line:column
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the half-open range [Start, End) of the input
type Span struct {
	Start Pos
	End   Pos
}

// Len returns the span length in bytes
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// IsEmpty reports whether the span covers no input
func (s Span) IsEmpty() bool {
	return s.End.Offset <= s.Start.Offset
}

// Contains reports whether inner lies within s
func (s Span) Contains(inner Span) bool {
	return s.Start.Offset <= inner.Start.Offset && inner.End.Offset <= s.End.Offset
}

// Join returns the smallest span covering s and other
func (s Span) Join(other Span) Span {
	out := s
	if other.Start.Offset < out.Start.Offset {
		out.Start = other.Start
	}
	if other.End.Offset > out.End.Offset {
		out.End = other.End
	}
	return out
}

// String renders the span as start-end
func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Token is a classified slice of the input. Text references the input
// string and is never copied.
type Token struct {
	Kind Kind
	Text string
	Span Span
}

// Pos returns the start position of the token
func (t Token) Pos() Pos {
	return t.Span.Start
}

// String returns the diagnostic dump form: KIND 'lexeme' line:col
func (t Token) String() string {
	return fmt.Sprintf("%s '%s' %s", t.Kind, t.Text, t.Span.Start)
}
