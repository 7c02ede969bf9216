// Package lexer implements a table-driven maximal-munch scanner.
//
// Package: lexer
// Title: Mina Lexical Analyzer
// Description: Partitions a unit of source text into classified tokens using a
//              prioritized table of regular-expression rules. At every
//              position the longest match wins; equal lengths go to the rule
//              declared first. Whitespace and comment rules advance the scan
//              without producing tokens. Input that no rule matches yields an
//              ILLEGAL token and a LexicalError, after which the lexer either
//              skips the offending code point or halts, depending on Policy.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Usage:
//
//	rs, err := lexer.Compile(rules)
//	if err != nil {
//	    return err
//	}
//	lx := lexer.New(rs, "let x = 1;", lexer.Options{})
//	for tok := range lx.All() {
//	    fmt.Println(tok)
//	}
//
// A RuleSet is immutable and may be shared between goroutines; a Lexer is
// owned by a single caller.
package lexer
