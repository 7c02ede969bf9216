// File: visitor.go
// Title: Mina AST Visitor Pattern
// Description: Visitor interface with a no-op base, plus Walk, Leaves and
//              the tree dump used by the CLI.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial visitor implementation

package ast

import (
	"fmt"
	"strings"

	"github.com/msto63/mina/foundation/mina/token"
)

// Visitor has one method per node variant
type Visitor interface {
	VisitProgram(p *Program) any
	VisitLetStmt(s *LetStmt) any
	VisitExprStmt(s *ExprStmt) any
	VisitBadStmt(s *BadStmt) any
	VisitBinaryExpr(e *BinaryExpr) any
	VisitUnaryExpr(e *UnaryExpr) any
	VisitParenExpr(e *ParenExpr) any
	VisitCallExpr(e *CallExpr) any
	VisitIdent(i *Ident) any
	VisitBasicLit(b *BasicLit) any
	VisitLeaf(l *Leaf) any
}

// BaseVisitor returns nil for every node. Embed it and override the
// methods you need; recursion is up to the embedding visitor or Walk.
type BaseVisitor struct{}

func (BaseVisitor) VisitProgram(*Program) any       { return nil }
func (BaseVisitor) VisitLetStmt(*LetStmt) any       { return nil }
func (BaseVisitor) VisitExprStmt(*ExprStmt) any     { return nil }
func (BaseVisitor) VisitBadStmt(*BadStmt) any       { return nil }
func (BaseVisitor) VisitBinaryExpr(*BinaryExpr) any { return nil }
func (BaseVisitor) VisitUnaryExpr(*UnaryExpr) any   { return nil }
func (BaseVisitor) VisitParenExpr(*ParenExpr) any   { return nil }
func (BaseVisitor) VisitCallExpr(*CallExpr) any     { return nil }
func (BaseVisitor) VisitIdent(*Ident) any           { return nil }
func (BaseVisitor) VisitBasicLit(*BasicLit) any     { return nil }
func (BaseVisitor) VisitLeaf(*Leaf) any             { return nil }

// Walk visits n and its subtree in pre-order. Children are skipped when fn
// returns false.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// Count returns the number of nodes in the subtree
func Count(n Node) int {
	count := 0
	Walk(n, func(Node) bool {
		count++
		return true
	})
	return count
}

// Leaves returns the tokens of the subtree in source order
func Leaves(n Node) []token.Token {
	var out []token.Token
	Walk(n, func(x Node) bool {
		if tok, ok := TokenOf(x); ok {
			out = append(out, tok)
		}
		return true
	})
	return out
}

// TokenOf returns the token wrapped by a Leaf, Ident or BasicLit
func TokenOf(n Node) (token.Token, bool) {
	switch x := n.(type) {
	case *Leaf:
		return x.Token, true
	case *Ident:
		return x.Token, true
	case *BasicLit:
		return x.Token, true
	}
	return token.Token{}, false
}

// Dump renders the subtree with one node per line, indented by depth
func Dump(n Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n Node, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	if tok, ok := TokenOf(n); ok {
		fmt.Fprintf(sb, "%s %q %s\n", n.Kind(), tok.Text, n.Span())
		return
	}
	fmt.Fprintf(sb, "%s %s\n", n.Kind(), n.Span())
	for _, c := range n.Children() {
		dump(sb, c, depth+1)
	}
}

// validateChildren checks the span invariant for n's direct children and
// validates each of them
func validateChildren(n Node) error {
	parent := n.Span()
	var prev token.Span
	for i, c := range n.Children() {
		span := c.Span()
		if !parent.Contains(span) {
			return fmt.Errorf("%s child %d %s at %s lies outside %s", n.Kind(), i, c.Kind(), span, parent)
		}
		if i > 0 && span.Start.Offset < prev.End.Offset {
			return fmt.Errorf("%s child %d %s at %s overlaps its predecessor", n.Kind(), i, c.Kind(), span)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		prev = span
	}
	return nil
}
