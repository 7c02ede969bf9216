// File: nodes.go
// Title: Mina AST Node Definitions
// Description: Node variants of the Mina syntax tree with their children,
//              spans, string forms and structural validation.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial node definitions
// - 2026-10-19 v0.1.1: Stored ranges on composite nodes, linear String

package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msto63/mina/foundation/mina/token"
)

// Node is implemented by every tree node
type Node interface {
	// Kind returns the node variant
	Kind() NodeKind

	// Span returns the source range covered by the node
	Span() token.Span

	// Children returns the direct children in source order
	Children() []Node

	// Accept dispatches to the matching Visitor method
	Accept(v Visitor) any

	// Validate checks the node and its subtree
	Validate() error

	// String returns a compact source-like form
	String() string
}

// Expr is implemented by expression nodes
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by statement nodes
type Stmt interface {
	Node
	stmtNode()
}

// Leaf wraps a keyword or punctuation token
type Leaf struct {
	Token token.Token
}

// Ident is a name
type Ident struct {
	Token token.Token
}

// BasicLit is an INT, FLOAT, STRING, CHAR or boolean literal
type BasicLit struct {
	Token token.Token
}

// Composite nodes carry a Range set when they are built, by the parser
// or by FromChildren. A zero Range is derived from the children on every
// call to Span, which walks the right spine of the subtree.

// BinaryExpr is X Op Y
type BinaryExpr struct {
	X     Expr
	Op    *Leaf
	Y     Expr
	Range token.Span
}

// UnaryExpr is Op X
type UnaryExpr struct {
	Op    *Leaf
	X     Expr
	Range token.Span
}

// ParenExpr is ( X )
type ParenExpr struct {
	Lparen *Leaf
	X      Expr
	Rparen *Leaf
	Range  token.Span
}

// CallExpr is Fun ( Args ). Commas holds the separators, one fewer than
// Args.
type CallExpr struct {
	Fun    *Ident
	Lparen *Leaf
	Args   []Expr
	Commas []*Leaf
	Rparen *Leaf
	Range  token.Span
}

// LetStmt is let Name = Value ;
type LetStmt struct {
	Let    *Leaf
	Name   *Ident
	Assign *Leaf
	Value  Expr
	Semi   *Leaf
	Range  token.Span
}

// ExprStmt is X ;
type ExprStmt struct {
	X     Expr
	Semi  *Leaf
	Range token.Span
}

// BadStmt marks a statement skipped by error recovery. It only exists
// while a failed parse unwinds and is never returned to callers.
type BadStmt struct {
	Range token.Span
	Semi  *Leaf
}

// Program is the root of one input unit
type Program struct {
	Stmts []Stmt

	// Range covers the whole input. When zero the span is derived from
	// the statements.
	Range token.Span
}

// Kind implementations

func (*Leaf) Kind() NodeKind       { return KindLeaf }
func (*Ident) Kind() NodeKind      { return KindIdent }
func (*BinaryExpr) Kind() NodeKind { return KindBinaryExpr }
func (*UnaryExpr) Kind() NodeKind  { return KindUnaryExpr }
func (*ParenExpr) Kind() NodeKind  { return KindParenExpr }
func (*CallExpr) Kind() NodeKind   { return KindCallExpr }
func (*LetStmt) Kind() NodeKind    { return KindLetStmt }
func (*ExprStmt) Kind() NodeKind   { return KindExprStmt }
func (*BadStmt) Kind() NodeKind    { return KindBadStmt }
func (*Program) Kind() NodeKind    { return KindProgram }

// Kind derives the literal kind from the token
func (b *BasicLit) Kind() NodeKind {
	k, _ := LiteralKind(b.Token.Kind)
	return k
}

func (*Ident) exprNode()      {}
func (*BasicLit) exprNode()   {}
func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*ParenExpr) exprNode()  {}
func (*CallExpr) exprNode()   {}

func (*LetStmt) stmtNode()  {}
func (*ExprStmt) stmtNode() {}
func (*BadStmt) stmtNode()  {}

// Span implementations

func (l *Leaf) Span() token.Span       { return l.Token.Span }
func (i *Ident) Span() token.Span      { return i.Token.Span }
func (b *BasicLit) Span() token.Span   { return b.Token.Span }
func (e *BinaryExpr) Span() token.Span { return rangeOf(e.Range, e) }
func (e *UnaryExpr) Span() token.Span  { return rangeOf(e.Range, e) }
func (e *ParenExpr) Span() token.Span  { return rangeOf(e.Range, e) }
func (e *CallExpr) Span() token.Span   { return rangeOf(e.Range, e) }
func (s *LetStmt) Span() token.Span    { return rangeOf(s.Range, s) }
func (s *ExprStmt) Span() token.Span   { return rangeOf(s.Range, s) }

func (s *BadStmt) Span() token.Span {
	if s.Semi == nil {
		return s.Range
	}
	return s.Range.Join(s.Semi.Span())
}

func (p *Program) Span() token.Span {
	return rangeOf(p.Range, p)
}

func rangeOf(r token.Span, n Node) token.Span {
	if r != (token.Span{}) {
		return r
	}
	return spanOf(n.Children())
}

// spanOf covers the first to the last child
func spanOf(children []Node) token.Span {
	if len(children) == 0 {
		return token.Span{}
	}
	return token.Span{
		Start: children[0].Span().Start,
		End:   children[len(children)-1].Span().End,
	}
}

// Children implementations

func (*Leaf) Children() []Node     { return nil }
func (*Ident) Children() []Node    { return nil }
func (*BasicLit) Children() []Node { return nil }

func (e *BinaryExpr) Children() []Node {
	return collect(e.X, leafNode(e.Op), e.Y)
}

func (e *UnaryExpr) Children() []Node {
	return collect(leafNode(e.Op), e.X)
}

func (e *ParenExpr) Children() []Node {
	return collect(leafNode(e.Lparen), e.X, leafNode(e.Rparen))
}

func (e *CallExpr) Children() []Node {
	out := collect(identNode(e.Fun), leafNode(e.Lparen))
	for i, arg := range e.Args {
		if i > 0 && i-1 < len(e.Commas) && e.Commas[i-1] != nil {
			out = append(out, e.Commas[i-1])
		}
		if arg != nil {
			out = append(out, arg)
		}
	}
	if e.Rparen != nil {
		out = append(out, e.Rparen)
	}
	return out
}

func (s *LetStmt) Children() []Node {
	return collect(leafNode(s.Let), identNode(s.Name), leafNode(s.Assign), s.Value, leafNode(s.Semi))
}

func (s *ExprStmt) Children() []Node {
	return collect(s.X, leafNode(s.Semi))
}

func (s *BadStmt) Children() []Node {
	return collect(leafNode(s.Semi))
}

func (p *Program) Children() []Node {
	out := make([]Node, 0, len(p.Stmts))
	for _, s := range p.Stmts {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func leafNode(l *Leaf) Node {
	if l == nil {
		return nil
	}
	return l
}

func identNode(i *Ident) Node {
	if i == nil {
		return nil
	}
	return i
}

// collect drops nil entries
func collect(nodes ...Node) []Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Accept implementations

func (l *Leaf) Accept(v Visitor) any       { return v.VisitLeaf(l) }
func (i *Ident) Accept(v Visitor) any      { return v.VisitIdent(i) }
func (b *BasicLit) Accept(v Visitor) any   { return v.VisitBasicLit(b) }
func (e *BinaryExpr) Accept(v Visitor) any { return v.VisitBinaryExpr(e) }
func (e *UnaryExpr) Accept(v Visitor) any  { return v.VisitUnaryExpr(e) }
func (e *ParenExpr) Accept(v Visitor) any  { return v.VisitParenExpr(e) }
func (e *CallExpr) Accept(v Visitor) any   { return v.VisitCallExpr(e) }
func (s *LetStmt) Accept(v Visitor) any    { return v.VisitLetStmt(s) }
func (s *ExprStmt) Accept(v Visitor) any   { return v.VisitExprStmt(s) }
func (s *BadStmt) Accept(v Visitor) any    { return v.VisitBadStmt(s) }
func (p *Program) Accept(v Visitor) any    { return v.VisitProgram(p) }

// String implementations

func (l *Leaf) String() string     { return l.Token.Text }
func (i *Ident) String() string    { return i.Token.Text }
func (b *BasicLit) String() string { return b.Token.Text }

func (e *BinaryExpr) String() string { return format(e) }
func (e *UnaryExpr) String() string  { return format(e) }
func (e *ParenExpr) String() string  { return format(e) }
func (e *CallExpr) String() string   { return format(e) }
func (s *LetStmt) String() string    { return format(s) }
func (s *ExprStmt) String() string   { return format(s) }
func (s *BadStmt) String() string    { return "<bad>;" }
func (p *Program) String() string    { return format(p) }

// format renders a subtree into one buffer so nested nodes are not
// copied once per level
func format(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node) {
	switch x := n.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *BinaryExpr:
		sb.WriteByte('(')
		writeExpr(sb, x.X)
		sb.WriteByte(' ')
		sb.WriteString(leafText(x.Op))
		sb.WriteByte(' ')
		writeExpr(sb, x.Y)
		sb.WriteByte(')')
	case *UnaryExpr:
		sb.WriteByte('(')
		sb.WriteString(leafText(x.Op))
		writeExpr(sb, x.X)
		sb.WriteByte(')')
	case *ParenExpr:
		sb.WriteByte('(')
		writeExpr(sb, x.X)
		sb.WriteByte(')')
	case *CallExpr:
		if x.Fun == nil {
			sb.WriteString("<nil>")
		} else {
			sb.WriteString(x.Fun.Token.Text)
		}
		sb.WriteByte('(')
		for i, a := range x.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, a)
		}
		sb.WriteByte(')')
	case *LetStmt:
		sb.WriteString("let ")
		if x.Name == nil {
			sb.WriteString("<nil>")
		} else {
			sb.WriteString(x.Name.Token.Text)
		}
		sb.WriteString(" = ")
		writeExpr(sb, x.Value)
		sb.WriteByte(';')
	case *ExprStmt:
		writeExpr(sb, x.X)
		sb.WriteByte(';')
	case *Program:
		for i, s := range x.Stmts {
			if i > 0 {
				sb.WriteByte('\n')
			}
			if s == nil {
				sb.WriteString("<nil>")
				continue
			}
			writeNode(sb, s)
		}
	default:
		sb.WriteString(x.String())
	}
}

// writeExpr renders a missing expression as <nil>
func writeExpr(sb *strings.Builder, e Expr) {
	if e == nil {
		sb.WriteString("<nil>")
		return
	}
	writeNode(sb, e)
}

func leafText(l *Leaf) string {
	if l == nil {
		return "<nil>"
	}
	return l.Token.Text
}

// Name returns the identifier text
func (i *Ident) Name() string {
	return i.Token.Text
}

// Value decodes the literal: int64, float64, string, rune or bool
func (b *BasicLit) Value() (any, error) {
	text := b.Token.Text
	switch b.Token.Kind {
	case token.INT:
		return strconv.ParseInt(text, 10, 64)
	case token.FLOAT:
		return strconv.ParseFloat(text, 64)
	case token.STRING:
		return strconv.Unquote(text)
	case token.CHAR:
		if len(text) < 3 {
			return nil, fmt.Errorf("malformed char literal %s", text)
		}
		r, _, tail, err := strconv.UnquoteChar(text[1:len(text)-1], '\'')
		if err != nil {
			return nil, err
		}
		if tail != "" {
			return nil, fmt.Errorf("char literal %s holds more than one character", text)
		}
		return r, nil
	case token.TRUE:
		return true, nil
	case token.FALSE:
		return false, nil
	default:
		return nil, fmt.Errorf("token %s is not a literal", b.Token.Kind)
	}
}

// Validate implementations

func (l *Leaf) Validate() error {
	lexeme := l.Token.Kind.Lexeme()
	switch {
	case l.Token.Text == "":
		return fmt.Errorf("leaf %s has no text", l.Token.Kind)
	case lexeme == "":
		return fmt.Errorf("leaf holds %s, want a keyword or punctuation", l.Token.Kind)
	case l.Token.Text != lexeme:
		return fmt.Errorf("leaf %s has text %q, want %q", l.Token.Kind, l.Token.Text, lexeme)
	}
	return nil
}

func (i *Ident) Validate() error {
	if i.Token.Kind != token.IDENT || !IsIdentifier(i.Token.Text) {
		return fmt.Errorf("identifier holds %s", i.Token)
	}
	return nil
}

// IsIdentifier reports whether s lexes as a single IDENT token: an ASCII
// letter or underscore, then letters, digits or underscores, and not a
// keyword
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && '0' <= c && c <= '9':
		default:
			return false
		}
	}
	for _, k := range []token.Kind{token.LET, token.TRUE, token.FALSE} {
		if s == k.Lexeme() {
			return false
		}
	}
	return true
}

func (b *BasicLit) Validate() error {
	if _, ok := LiteralKind(b.Token.Kind); !ok {
		return fmt.Errorf("literal holds %s", b.Token.Kind)
	}
	if b.Token.Text == "" {
		return fmt.Errorf("literal %s has no text", b.Token.Kind)
	}
	return nil
}

func (e *BinaryExpr) Validate() error {
	switch {
	case e.X == nil:
		return fmt.Errorf("left operand is required")
	case e.Y == nil:
		return fmt.Errorf("right operand is required")
	}
	if err := expectLeaf(e.Op, "operator", IsBinaryOp); err != nil {
		return err
	}
	return validateChildren(e)
}

func (e *UnaryExpr) Validate() error {
	if e.X == nil {
		return fmt.Errorf("operand is required")
	}
	if err := expectLeaf(e.Op, "operator", IsUnaryOp); err != nil {
		return err
	}
	return validateChildren(e)
}

func (e *ParenExpr) Validate() error {
	if e.X == nil {
		return fmt.Errorf("parenthesized expression is required")
	}
	if err := expectLeaf(e.Lparen, "'('", is(token.LPAREN)); err != nil {
		return err
	}
	if err := expectLeaf(e.Rparen, "')'", is(token.RPAREN)); err != nil {
		return err
	}
	return validateChildren(e)
}

func (e *CallExpr) Validate() error {
	if e.Fun == nil {
		return fmt.Errorf("function name is required")
	}
	if err := expectLeaf(e.Lparen, "'('", is(token.LPAREN)); err != nil {
		return err
	}
	if err := expectLeaf(e.Rparen, "')'", is(token.RPAREN)); err != nil {
		return err
	}
	if want := max(len(e.Args)-1, 0); len(e.Commas) != want {
		return fmt.Errorf("call with %d arguments has %d commas", len(e.Args), len(e.Commas))
	}
	for i, a := range e.Args {
		if a == nil {
			return fmt.Errorf("argument %d is nil", i)
		}
	}
	for _, c := range e.Commas {
		if err := expectLeaf(c, "','", is(token.COMMA)); err != nil {
			return err
		}
	}
	return validateChildren(e)
}

func (s *LetStmt) Validate() error {
	if s.Name == nil {
		return fmt.Errorf("let binding needs a name")
	}
	if s.Value == nil {
		return fmt.Errorf("let binding needs a value")
	}
	if err := expectLeaf(s.Let, "'let'", is(token.LET)); err != nil {
		return err
	}
	if err := expectLeaf(s.Assign, "'='", is(token.ASSIGN)); err != nil {
		return err
	}
	if err := expectLeaf(s.Semi, "';'", is(token.SEMICOLON)); err != nil {
		return err
	}
	return validateChildren(s)
}

func (s *ExprStmt) Validate() error {
	if s.X == nil {
		return fmt.Errorf("expression is required")
	}
	if err := expectLeaf(s.Semi, "';'", is(token.SEMICOLON)); err != nil {
		return err
	}
	return validateChildren(s)
}

func (s *BadStmt) Validate() error {
	if err := expectLeaf(s.Semi, "';'", is(token.SEMICOLON)); err != nil {
		return err
	}
	return validateChildren(s)
}

func (p *Program) Validate() error {
	for i, s := range p.Stmts {
		if s == nil {
			return fmt.Errorf("statement %d is nil", i)
		}
	}
	return validateChildren(p)
}

func is(k token.Kind) func(token.Kind) bool {
	return func(x token.Kind) bool { return x == k }
}

func expectLeaf(l *Leaf, what string, ok func(token.Kind) bool) error {
	if l == nil {
		return fmt.Errorf("%s is required", what)
	}
	if !ok(l.Token.Kind) {
		return fmt.Errorf("%s expected, found %s", what, l.Token.Kind)
	}
	return l.Validate()
}
