// File: kind.go
// Title: AST Node Kinds
// Description: Stable node kind numbers shared by the tree and its binary
//              encoding.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package ast

import (
	"fmt"

	"github.com/msto63/mina/foundation/mina/token"
)

// NodeKind identifies the variant of a node. The numbers are part of the
// serialized format and are never reused.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota
	KindProgram
	KindLetStmt
	KindExprStmt
	KindBadStmt
	KindBinaryExpr
	KindUnaryExpr
	KindParenExpr
	KindCallExpr
	KindIdent
	KindIntLit
	KindFloatLit
	KindStringLit
	KindCharLit
	KindBoolLit
	KindLeaf
	nodeKindCount
)

var nodeKindNames = [...]string{
	KindInvalid:    "Invalid",
	KindProgram:    "Program",
	KindLetStmt:    "LetStmt",
	KindExprStmt:   "ExprStmt",
	KindBadStmt:    "BadStmt",
	KindBinaryExpr: "BinaryExpr",
	KindUnaryExpr:  "UnaryExpr",
	KindParenExpr:  "ParenExpr",
	KindCallExpr:   "CallExpr",
	KindIdent:      "Ident",
	KindIntLit:     "IntLit",
	KindFloatLit:   "FloatLit",
	KindStringLit:  "StringLit",
	KindCharLit:    "CharLit",
	KindBoolLit:    "BoolLit",
	KindLeaf:       "Leaf",
}

// String returns the kind name
func (k NodeKind) String() string {
	if k < nodeKindCount {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", k)
}

// IsValid reports whether k names a node variant
func (k NodeKind) IsValid() bool {
	return k > KindInvalid && k < nodeKindCount
}

// IsLiteral reports whether k is one of the BasicLit kinds
func (k NodeKind) IsLiteral() bool {
	return k >= KindIntLit && k <= KindBoolLit
}

// IsToken reports whether nodes of kind k wrap a single token
func (k NodeKind) IsToken() bool {
	return k == KindIdent || k == KindLeaf || k.IsLiteral()
}

// LiteralKind maps a literal token kind to its node kind
func LiteralKind(k token.Kind) (NodeKind, bool) {
	switch k {
	case token.INT:
		return KindIntLit, true
	case token.FLOAT:
		return KindFloatLit, true
	case token.STRING:
		return KindStringLit, true
	case token.CHAR:
		return KindCharLit, true
	case token.TRUE, token.FALSE:
		return KindBoolLit, true
	default:
		return KindInvalid, false
	}
}

// IsBinaryOp reports whether k is an infix operator
func IsBinaryOp(k token.Kind) bool {
	switch k {
	case token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE,
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		return true
	}
	return false
}

// IsUnaryOp reports whether k is a prefix operator
func IsUnaryOp(k token.Kind) bool {
	return k == token.MINUS
}
