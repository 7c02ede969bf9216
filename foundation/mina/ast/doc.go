// File: doc.go
// Title: Mina Abstract Syntax Tree Package Documentation
// Description: Node types produced by the Mina parser, traversal helpers and
//              the span invariant checks.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial AST implementation

/*
Package ast defines the syntax tree of a Mina program.

The tree is strict: every node has exactly one parent and children are
listed left to right in source order. Keyword and punctuation tokens are
kept as Leaf nodes, so concatenating the lexemes returned by Leaves
reproduces the significant tokens of the input.

Spans are derived from the first and the last leaf of a node. Validate
checks that every child span lies inside its parent's span and that
siblings do not overlap.

	prog, _ := frontend.Parse("let x = 1 + 2;")
	ast.Walk(prog, func(n ast.Node) bool {
		fmt.Println(n.Kind(), n.Span())
		return true
	})
*/
package ast
