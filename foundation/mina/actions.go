// File: actions.go
// Title: Tree Building Reduce Actions
// Description: Reduce functions that assemble the Mina syntax tree bottom
//              up, one per production label.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Composite nodes keep the reduce span

package mina

import (
	"fmt"
	"reflect"

	"github.com/msto63/mina/foundation/mina/ast"
	"github.com/msto63/mina/foundation/mina/parser"
	"github.com/msto63/mina/foundation/mina/token"
)

// argList is the value of Args and ArgList
type argList struct {
	args   []ast.Expr
	commas []*ast.Leaf
}

func reduceActions() map[string]parser.ReduceFunc {
	return map[string]parser.ReduceFunc{
		labelProgram: func(v []any, _ token.Span) (any, error) {
			stmts, err := as[[]ast.Stmt](v, 0)
			if err != nil {
				return nil, err
			}
			return &ast.Program{Stmts: stmts}, nil
		},

		labelStmtsEmpty: func([]any, token.Span) (any, error) {
			return []ast.Stmt{}, nil
		},

		labelStmtsAppend: func(v []any, _ token.Span) (any, error) {
			stmts, err := as[[]ast.Stmt](v, 0)
			if err != nil {
				return nil, err
			}
			stmt, err := as[ast.Stmt](v, 1)
			if err != nil {
				return nil, err
			}
			return append(stmts, stmt), nil
		},

		labelLet: func(v []any, span token.Span) (any, error) {
			value, err := as[ast.Expr](v, 3)
			if err != nil {
				return nil, err
			}
			return &ast.LetStmt{
				Let:    leaf(v, 0),
				Name:   &ast.Ident{Token: tokenAt(v, 1)},
				Assign: leaf(v, 2),
				Value:  value,
				Semi:   leaf(v, 4),
				Range:  span,
			}, nil
		},

		labelExprStmt: func(v []any, span token.Span) (any, error) {
			x, err := as[ast.Expr](v, 0)
			if err != nil {
				return nil, err
			}
			return &ast.ExprStmt{X: x, Semi: leaf(v, 1), Range: span}, nil
		},

		labelBadStmt: func(v []any, _ token.Span) (any, error) {
			semi := leaf(v, 1)
			return &ast.BadStmt{
				Range: token.Span{Start: tokenAt(v, 0).Span.Start, End: semi.Token.Span.End},
				Semi:  semi,
			}, nil
		},

		labelBinary: func(v []any, span token.Span) (any, error) {
			x, err := as[ast.Expr](v, 0)
			if err != nil {
				return nil, err
			}
			y, err := as[ast.Expr](v, 2)
			if err != nil {
				return nil, err
			}
			return &ast.BinaryExpr{X: x, Op: leaf(v, 1), Y: y, Range: span}, nil
		},

		labelUnary: func(v []any, span token.Span) (any, error) {
			x, err := as[ast.Expr](v, 1)
			if err != nil {
				return nil, err
			}
			return &ast.UnaryExpr{Op: leaf(v, 0), X: x, Range: span}, nil
		},

		labelParen: func(v []any, span token.Span) (any, error) {
			x, err := as[ast.Expr](v, 1)
			if err != nil {
				return nil, err
			}
			return &ast.ParenExpr{Lparen: leaf(v, 0), X: x, Rparen: leaf(v, 2), Range: span}, nil
		},

		labelCall: func(v []any, span token.Span) (any, error) {
			args, err := as[argList](v, 2)
			if err != nil {
				return nil, err
			}
			return &ast.CallExpr{
				Fun:    &ast.Ident{Token: tokenAt(v, 0)},
				Lparen: leaf(v, 1),
				Args:   args.args,
				Commas: args.commas,
				Rparen: leaf(v, 3),
				Range:  span,
			}, nil
		},

		labelLiteral: func(v []any, _ token.Span) (any, error) {
			return &ast.BasicLit{Token: tokenAt(v, 0)}, nil
		},

		labelIdent: func(v []any, _ token.Span) (any, error) {
			return &ast.Ident{Token: tokenAt(v, 0)}, nil
		},

		labelArgsEmpty: func([]any, token.Span) (any, error) {
			return argList{}, nil
		},

		labelArgs: func(v []any, _ token.Span) (any, error) {
			return as[argList](v, 0)
		},

		labelArgFirst: func(v []any, _ token.Span) (any, error) {
			x, err := as[ast.Expr](v, 0)
			if err != nil {
				return nil, err
			}
			return argList{args: []ast.Expr{x}}, nil
		},

		labelArgNext: func(v []any, _ token.Span) (any, error) {
			list, err := as[argList](v, 0)
			if err != nil {
				return nil, err
			}
			x, err := as[ast.Expr](v, 2)
			if err != nil {
				return nil, err
			}
			list.args = append(list.args, x)
			list.commas = append(list.commas, leaf(v, 1))
			return list, nil
		},
	}
}

// as extracts the value at i with the type the production expects
func as[T any](v []any, i int) (T, error) {
	x, ok := v[i].(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("value %d is %T, want %s", i, v[i], reflect.TypeFor[T]())
	}
	return x, nil
}

// tokenAt returns the terminal at i. Terminals always carry token.Token.
func tokenAt(v []any, i int) token.Token {
	tok, _ := v[i].(token.Token)
	return tok
}

func leaf(v []any, i int) *ast.Leaf {
	return &ast.Leaf{Token: tokenAt(v, i)}
}
