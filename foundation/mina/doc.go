// File: doc.go
// Title: Mina Front-End Package Documentation
// Description: Language definition and entry point of the Mina front-end.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

/*
Package mina ties the Mina token rules and grammar to the generic lexer,
LALR table builder and parser.

Architecture:

	source text ──► lexer ──► parser (table driven) ──► ast.Program ──► astpb
	                  ▲            ▲
	             LexRules()    Table() (built once, strict)

The grammar is:

	%nonassoc EQ NE
	%nonassoc LT LE GT GE
	%left     PLUS MINUS
	%left     STAR SLASH PERCENT
	%right    unary

	Program  : StmtList
	StmtList : ε | StmtList Stmt
	Stmt     : LET IDENT ASSIGN Expr SEMICOLON
	         | Expr SEMICOLON
	         | error SEMICOLON
	Expr     : Expr op Expr
	         | MINUS Expr %prec unary
	         | LPAREN Expr RPAREN
	         | IDENT LPAREN Args RPAREN
	         | INT | FLOAT | STRING | CHAR | TRUE | FALSE | IDENT
	Args     : ε | ArgList
	ArgList  : Expr | ArgList COMMA Expr

The error production makes ';' the synchronizing token: after a syntax
error the parser skips to the next ';' and keeps reporting later errors.

Usage:

	fe, err := mina.New(mina.Options{Policy: lexer.PolicySkip})
	if err != nil {
		return err
	}
	prog, err := fe.Parse("let x = 1 + 2;")
	if list, ok := parser.AsErrorList(err); ok {
		for _, e := range list {
			fmt.Println(e)
		}
	}
*/
package mina
