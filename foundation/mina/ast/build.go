// File: build.go
// Title: Generic Node Construction
// Description: Builds nodes from a kind plus an ordered child list or a
//              token, and converts trees into plain maps for JSON and YAML.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: FromChildren records the node range

package ast

import (
	"fmt"

	"github.com/msto63/mina/foundation/mina/token"
)

// FromToken builds a Leaf, Ident or BasicLit of the given kind
func FromToken(kind NodeKind, tok token.Token) (Node, error) {
	var n Node
	switch {
	case kind == KindLeaf:
		n = &Leaf{Token: tok}
	case kind == KindIdent:
		n = &Ident{Token: tok}
	case kind.IsLiteral():
		if k, ok := LiteralKind(tok.Kind); !ok || k != kind {
			return nil, fmt.Errorf("%s cannot hold %s", kind, tok.Kind)
		}
		n = &BasicLit{Token: tok}
	default:
		return nil, fmt.Errorf("%s is not a token node", kind)
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// FromChildren builds a composite node from its children in source order,
// the same order Children returns
func FromChildren(kind NodeKind, children []Node) (Node, error) {
	b := childReader{kind: kind, children: children}

	var n Node
	switch kind {
	case KindProgram:
		p := &Program{Stmts: make([]Stmt, 0, len(children))}
		for !b.done() {
			p.Stmts = append(p.Stmts, b.stmt())
		}
		n = p
	case KindLetStmt:
		n = &LetStmt{Let: b.leaf(), Name: b.ident(), Assign: b.leaf(), Value: b.expr(), Semi: b.leaf()}
	case KindExprStmt:
		n = &ExprStmt{X: b.expr(), Semi: b.leaf()}
	case KindBadStmt:
		n = &BadStmt{Semi: b.leaf()}
	case KindBinaryExpr:
		n = &BinaryExpr{X: b.expr(), Op: b.leaf(), Y: b.expr()}
	case KindUnaryExpr:
		n = &UnaryExpr{Op: b.leaf(), X: b.expr()}
	case KindParenExpr:
		n = &ParenExpr{Lparen: b.leaf(), X: b.expr(), Rparen: b.leaf()}
	case KindCallExpr:
		c := &CallExpr{Fun: b.ident(), Lparen: b.leaf()}
		for b.remaining() > 1 {
			if len(c.Args) > 0 {
				c.Commas = append(c.Commas, b.leaf())
			}
			c.Args = append(c.Args, b.expr())
		}
		c.Rparen = b.leaf()
		n = c
	default:
		return nil, fmt.Errorf("%s is not a composite node", kind)
	}

	if b.err == nil && !b.done() {
		b.err = fmt.Errorf("%s has %d extra children", kind, b.remaining())
	}
	if b.err != nil {
		return nil, b.err
	}
	SetRange(n, spanOf(children))
	return n, nil
}

// SetRange stores s as the source range of a composite node. It reports
// false for token nodes, whose span is their token's.
func SetRange(n Node, s token.Span) bool {
	switch x := n.(type) {
	case *BinaryExpr:
		x.Range = s
	case *UnaryExpr:
		x.Range = s
	case *ParenExpr:
		x.Range = s
	case *CallExpr:
		x.Range = s
	case *LetStmt:
		x.Range = s
	case *ExprStmt:
		x.Range = s
	case *BadStmt:
		x.Range = s
	case *Program:
		x.Range = s
	default:
		return false
	}
	return true
}

// childReader consumes a child list and records the first mismatch
type childReader struct {
	kind     NodeKind
	children []Node
	pos      int
	err      error
}

func (r *childReader) done() bool     { return r.err != nil || r.pos >= len(r.children) }
func (r *childReader) remaining() int { return len(r.children) - r.pos }

func (r *childReader) take(what string) Node {
	if r.err != nil {
		return nil
	}
	if r.pos >= len(r.children) {
		r.err = fmt.Errorf("%s is missing child %d (%s)", r.kind, r.pos, what)
		return nil
	}
	n := r.children[r.pos]
	r.pos++
	if n == nil {
		r.err = fmt.Errorf("%s child %d is nil", r.kind, r.pos-1)
	}
	return n
}

func (r *childReader) mismatch(n Node, what string) {
	if r.err == nil {
		r.err = fmt.Errorf("%s child %d is %s, want %s", r.kind, r.pos-1, n.Kind(), what)
	}
}

func (r *childReader) leaf() *Leaf {
	n := r.take("Leaf")
	if n == nil {
		return nil
	}
	l, ok := n.(*Leaf)
	if !ok {
		r.mismatch(n, "Leaf")
	}
	return l
}

func (r *childReader) ident() *Ident {
	n := r.take("Ident")
	if n == nil {
		return nil
	}
	i, ok := n.(*Ident)
	if !ok {
		r.mismatch(n, "Ident")
	}
	return i
}

func (r *childReader) expr() Expr {
	n := r.take("expression")
	if n == nil {
		return nil
	}
	e, ok := n.(Expr)
	if !ok {
		r.mismatch(n, "an expression")
	}
	return e
}

func (r *childReader) stmt() Stmt {
	n := r.take("statement")
	if n == nil {
		return nil
	}
	s, ok := n.(Stmt)
	if !ok {
		r.mismatch(n, "a statement")
	}
	return s
}

// ToMap converts the subtree into nested maps with kind, span, token and
// children keys
func ToMap(n Node) map[string]any {
	if n == nil {
		return nil
	}
	m := map[string]any{
		"kind": n.Kind().String(),
		"span": n.Span().String(),
	}
	if tok, ok := TokenOf(n); ok {
		m["token"] = tok.Kind.String()
		m["text"] = tok.Text
		return m
	}
	children := n.Children()
	list := make([]any, len(children))
	for i, c := range children {
		list[i] = ToMap(c)
	}
	m["children"] = list
	return m
}
