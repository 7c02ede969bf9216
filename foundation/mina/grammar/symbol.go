// File: symbol.go
// Title: Grammar Symbols and Precedence
// Description: Terminal and nonterminal symbols plus precedence levels.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package grammar

import (
	"github.com/msto63/mina/foundation/mina/token"
)

// Symbol is a terminal or nonterminal on the right-hand side of a production
type Symbol struct {
	terminal bool
	kind     token.Kind
	name     string
}

// T returns the terminal symbol for a token kind
func T(kind token.Kind) Symbol {
	return Symbol{terminal: true, kind: kind}
}

// N returns the nonterminal symbol with the given name
func N(name string) Symbol {
	return Symbol{name: name}
}

// Error returns the recovery pseudo-terminal. A production containing it
// marks a state where the parser may resume after a syntax error.
func Error() Symbol {
	return T(token.ERROR)
}

// IsTerminal reports whether the symbol is a terminal
func (s Symbol) IsTerminal() bool {
	return s.terminal
}

// Kind returns the token kind of a terminal symbol
func (s Symbol) Kind() token.Kind {
	return s.kind
}

// Name returns the nonterminal name, or the kind name for terminals
func (s Symbol) Name() string {
	if s.terminal {
		return s.kind.String()
	}
	return s.name
}

// String implements fmt.Stringer
func (s Symbol) String() string {
	return s.Name()
}

// Assoc is the associativity of a precedence level
type Assoc uint8

const (
	AssocLeft Assoc = iota + 1
	AssocRight
	AssocNonAssoc
)

// String returns the yacc keyword for the associativity
func (a Assoc) String() string {
	switch a {
	case AssocLeft:
		return "%left"
	case AssocRight:
		return "%right"
	case AssocNonAssoc:
		return "%nonassoc"
	default:
		return "none"
	}
}

// Level is a precedence level. Levels declared later bind tighter. The
// zero Level means no precedence.
type Level struct {
	rank  int
	assoc Assoc
}

// Rank returns the binding strength; 0 means no precedence
func (l Level) Rank() int {
	return l.rank
}

// Assoc returns the associativity of the level
func (l Level) Assoc() Assoc {
	return l.assoc
}

func (l Level) defined() bool {
	return l.rank > 0
}
