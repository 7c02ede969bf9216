// Package grammar builds LALR(1) parse tables from a declarative grammar.
//
// Package: grammar
// Title: Mina Grammar Tables
// Description: A Builder collects productions and yacc-style precedence
//              declarations. Build augments the grammar, computes nullable and
//              FIRST sets, constructs the LR(0) automaton and attaches LALR(1)
//              lookaheads by spontaneous generation and propagation. Conflicts
//              are resolved with precedence and associativity at build time;
//              the resulting Table is immutable and safe for concurrent use.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Conflict resolution follows yacc. A production takes the precedence of
// its %prec level or of its last terminal that has one. On a shift/reduce
// conflict the higher precedence wins; on equal precedence left
// associativity reduces, right associativity shifts and nonassoc makes the
// cell an error. Without precedence the shift wins and the conflict is
// reported as unresolved. Reduce/reduce conflicts go to the production
// declared first and are always unresolved. Strict builds fail on any
// unresolved conflict.
//
// The table has no default reductions, so a syntax error is detected in
// the state that first sees the bad lookahead and Expected returns the
// exact set of terminals valid there.
//
// Usage:
//
//	b := grammar.NewBuilder("calc")
//	b.Left(token.PLUS)
//	b.Rule("E", "add", grammar.N("E"), grammar.T(token.PLUS), grammar.N("E"))
//	b.Rule("E", "int", grammar.T(token.INT))
//	table, err := b.Build(grammar.BuildOptions{Strict: true})
package grammar
