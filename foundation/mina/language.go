// File: language.go
// Title: Mina Language Definition
// Description: Lexical rules and grammar of Mina, compiled once per process
//              and shared by every Frontend.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial language definition

package mina

import (
	"sync"

	minalog "github.com/msto63/mina/foundation/core/log"
	"github.com/msto63/mina/foundation/mina/grammar"
	"github.com/msto63/mina/foundation/mina/lexer"
	"github.com/msto63/mina/foundation/mina/token"
)

// LexRules returns the Mina token rules in priority order
func LexRules() []lexer.Rule {
	return []lexer.Rule{
		{Pattern: `[ \t\r\n]+`, Kind: token.WHITESPACE, Skip: true},
		{Pattern: `//[^\n]*`, Kind: token.COMMENT, Skip: true},
		{Pattern: `/\*([^*]|\*+[^*/])*\*+/`, Kind: token.COMMENT, Skip: true},

		{Pattern: `let`, Kind: token.LET},
		{Pattern: `true`, Kind: token.TRUE},
		{Pattern: `false`, Kind: token.FALSE},

		{Pattern: `[0-9]+\.[0-9]+`, Kind: token.FLOAT},
		{Pattern: `[0-9]+`, Kind: token.INT},
		{Pattern: `"(\\.|[^"\\\n])*"`, Kind: token.STRING},
		{Pattern: `'(\\.|[^'\\\n])'`, Kind: token.CHAR},
		{Pattern: `[A-Za-z_][A-Za-z0-9_]*`, Kind: token.IDENT},

		{Pattern: `==`, Kind: token.EQ},
		{Pattern: `!=`, Kind: token.NE},
		{Pattern: `<=`, Kind: token.LE},
		{Pattern: `>=`, Kind: token.GE},
		{Pattern: `<`, Kind: token.LT},
		{Pattern: `>`, Kind: token.GT},
		{Pattern: `=`, Kind: token.ASSIGN},
		{Pattern: `\+`, Kind: token.PLUS},
		{Pattern: `-`, Kind: token.MINUS},
		{Pattern: `\*`, Kind: token.STAR},
		{Pattern: `/`, Kind: token.SLASH},
		{Pattern: `%`, Kind: token.PERCENT},
		{Pattern: `\(`, Kind: token.LPAREN},
		{Pattern: `\)`, Kind: token.RPAREN},
		{Pattern: `,`, Kind: token.COMMA},
		{Pattern: `;`, Kind: token.SEMICOLON},
	}
}

// Production labels bound to reduce actions
const (
	labelProgram     = "program"
	labelStmtsEmpty  = "stmts-empty"
	labelStmtsAppend = "stmts-append"
	labelLet         = "let"
	labelExprStmt    = "expr-stmt"
	labelBadStmt     = "bad-stmt"
	labelBinary      = "binary"
	labelUnary       = "unary"
	labelParen       = "paren"
	labelCall        = "call"
	labelLiteral     = "literal"
	labelIdent       = "ident"
	labelArgsEmpty   = "args-empty"
	labelArgs        = "args"
	labelArgFirst    = "arg-first"
	labelArgNext     = "arg-next"
)

var binaryOps = []token.Kind{
	token.EQ, token.NE,
	token.LT, token.LE, token.GT, token.GE,
	token.PLUS, token.MINUS,
	token.STAR, token.SLASH, token.PERCENT,
}

// Grammar returns a fresh builder holding the Mina grammar
func Grammar() *grammar.Builder {
	b := grammar.NewBuilder("mina")

	b.NonAssoc(token.EQ, token.NE)
	b.NonAssoc(token.LT, token.LE, token.GT, token.GE)
	b.Left(token.PLUS, token.MINUS)
	b.Left(token.STAR, token.SLASH, token.PERCENT)
	unary := b.Right()

	T, N := grammar.T, grammar.N

	b.Rule("Program", labelProgram, N("StmtList"))

	b.Rule("StmtList", labelStmtsEmpty)
	b.Rule("StmtList", labelStmtsAppend, N("StmtList"), N("Stmt"))

	b.Rule("Stmt", labelLet, T(token.LET), T(token.IDENT), T(token.ASSIGN), N("Expr"), T(token.SEMICOLON))
	b.Rule("Stmt", labelExprStmt, N("Expr"), T(token.SEMICOLON))
	b.Rule("Stmt", labelBadStmt, grammar.Error(), T(token.SEMICOLON))

	for _, op := range binaryOps {
		b.Rule("Expr", labelBinary, N("Expr"), T(op), N("Expr"))
	}
	b.Rule("Expr", labelUnary, T(token.MINUS), N("Expr")).Prec(unary)
	b.Rule("Expr", labelParen, T(token.LPAREN), N("Expr"), T(token.RPAREN))
	b.Rule("Expr", labelCall, T(token.IDENT), T(token.LPAREN), N("Args"), T(token.RPAREN))
	for _, lit := range []token.Kind{token.INT, token.FLOAT, token.STRING, token.CHAR, token.TRUE, token.FALSE} {
		b.Rule("Expr", labelLiteral, T(lit))
	}
	b.Rule("Expr", labelIdent, T(token.IDENT))

	b.Rule("Args", labelArgsEmpty)
	b.Rule("Args", labelArgs, N("ArgList"))
	b.Rule("ArgList", labelArgFirst, N("Expr"))
	b.Rule("ArgList", labelArgNext, N("ArgList"), T(token.COMMA), N("Expr"))

	b.Start("Program")
	return b
}

var (
	rulesOnce sync.Once
	rules     *lexer.RuleSet
	rulesErr  error

	tableOnce sync.Once
	table     *grammar.Table
	tableErr  error
)

// RuleSet returns the compiled Mina token rules
func RuleSet() (*lexer.RuleSet, error) {
	rulesOnce.Do(func() {
		rules, rulesErr = lexer.Compile(LexRules())
	})
	return rules, rulesErr
}

// Table returns the Mina parse table. It is built strictly, so any
// unresolved conflict is an error.
func Table() (*grammar.Table, error) {
	tableOnce.Do(func() {
		table, tableErr = Grammar().Build(grammar.BuildOptions{
			Strict: true,
			Logger: minalog.GetDefault(),
		})
	})
	return table, tableErr
}
