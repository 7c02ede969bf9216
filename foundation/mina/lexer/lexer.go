// File: lexer.go
// Title: Mina Lexer
// Description: Pull-based scanner over one input unit. Tokens are produced on
//              demand; the lexer holds nothing but its scan position and the
//              lexical errors seen so far.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package lexer

import (
	"iter"
	"unicode/utf8"

	minalog "github.com/msto63/mina/foundation/core/log"
	"github.com/msto63/mina/foundation/mina/token"
)

// Options configures a Lexer
type Options struct {
	Policy Policy
	Logger *minalog.Logger
}

// Lexer scans a single input unit
type Lexer struct {
	rs     *RuleSet
	input  string
	policy Policy
	logger *minalog.Logger

	pos    token.Pos
	halted bool
	errors []*LexicalError
}

// New creates a lexer positioned at the start of input
func New(rs *RuleSet, input string, opts Options) *Lexer {
	return NewAt(rs, input, 0, opts)
}

// NewAt creates a lexer that starts scanning at a byte offset. Line and
// column are computed from the skipped prefix. Offsets outside the input
// are clamped.
func NewAt(rs *RuleSet, input string, offset int, opts Options) *Lexer {
	logger := opts.Logger
	if logger == nil {
		logger = minalog.Discard()
	}

	offset = max(0, min(offset, len(input)))

	l := &Lexer{
		rs:     rs,
		input:  input,
		policy: opts.Policy,
		logger: logger.WithField("component", "mina-lexer"),
		pos:    token.Pos{Line: 1, Column: 1},
	}
	l.advance(input[:offset])
	return l
}

// Next returns the next significant token. After the input is exhausted,
// or after a halt, it returns EOF on every call.
func (l *Lexer) Next() token.Token {
	for {
		if l.halted || l.pos.Offset >= len(l.input) {
			return token.Token{Kind: token.EOF, Span: token.Span{Start: l.pos, End: l.pos}}
		}

		rest := l.input[l.pos.Offset:]
		kind, skip, n := l.rs.match(rest)

		if n == 0 {
			return l.illegal(rest)
		}

		start := l.pos
		text := rest[:n]
		l.advance(text)

		if skip {
			continue
		}
		return token.Token{Kind: kind, Text: text, Span: token.Span{Start: start, End: l.pos}}
	}
}

func (l *Lexer) illegal(rest string) token.Token {
	_, size := utf8.DecodeRuneInString(rest)
	text := rest[:size]

	start := l.pos
	end := start
	end.Offset += size
	end.Column++

	tok := token.Token{Kind: token.ILLEGAL, Text: text, Span: token.Span{Start: start, End: end}}
	l.errors = append(l.errors, &LexicalError{Text: text, Span: tok.Span})

	l.logger.Debug("unrecognized input", minalog.Fields{
		"text":   text,
		"pos":    start.String(),
		"policy": l.policy.String(),
	})

	if l.policy == PolicyHalt {
		l.halted = true
		return tok
	}
	l.pos = end
	return tok
}

// advance moves the scan position over text, which must start at the
// current offset
func (l *Lexer) advance(text string) {
	for _, r := range text {
		if r == '\n' {
			l.pos.Line++
			l.pos.Column = 1
		} else {
			l.pos.Column++
		}
	}
	l.pos.Offset += len(text)
}

// All returns the remaining token stream as an iterator. The sequence ends
// after yielding EOF.
func (l *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := l.Next()
			if !yield(tok) || tok.Kind == token.EOF {
				return
			}
		}
	}
}

// Errors returns the lexical errors recorded so far
func (l *Lexer) Errors() []*LexicalError {
	out := make([]*LexicalError, len(l.errors))
	copy(out, l.errors)
	return out
}

// Halted reports whether scanning stopped because of PolicyHalt
func (l *Lexer) Halted() bool {
	return l.halted
}

// Pos returns the current scan position
func (l *Lexer) Pos() token.Pos {
	return l.pos
}

// Tokenize scans the whole input and returns every significant token,
// excluding the final EOF, together with the lexical errors.
func Tokenize(rs *RuleSet, input string, opts Options) ([]token.Token, []*LexicalError) {
	l := New(rs, input, opts)
	var tokens []token.Token
	for tok := range l.All() {
		if tok.Kind == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, l.errors
}
