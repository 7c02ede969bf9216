// File: frontend.go
// Title: Mina Front-End
// Description: Entry point that runs the lexer and the parser over one
//              input unit and returns tokens, a syntax tree or its encoding.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package mina

import (
	minaerror "github.com/msto63/mina/foundation/core/error"
	minalog "github.com/msto63/mina/foundation/core/log"
	"github.com/msto63/mina/foundation/mina/ast"
	"github.com/msto63/mina/foundation/mina/astpb"
	"github.com/msto63/mina/foundation/mina/lexer"
	"github.com/msto63/mina/foundation/mina/parser"
	"github.com/msto63/mina/foundation/mina/token"
)

// DefaultMaxInputLength is the input cap used when Options leaves it zero
const DefaultMaxInputLength = 1 << 20

// Options configures a Frontend
type Options struct {
	// Policy decides whether lexing continues after an unrecognized
	// character (default skip)
	Policy lexer.Policy

	// MaxInputLength rejects larger inputs with CodeInputTooLong. Zero
	// means DefaultMaxInputLength, a negative value disables the check.
	MaxInputLength int

	// MaxErrors stops a parse after this many errors (0 = no limit)
	MaxErrors int

	// Logger for front-end operations (defaults to the default logger)
	Logger *minalog.Logger
}

// Frontend lexes and parses Mina source. It is safe for concurrent use.
type Frontend struct {
	rules  *lexer.RuleSet
	parser *parser.Parser
	opts   Options
	logger *minalog.Logger
}

// New creates a Frontend over the shared Mina rules and table
func New(opts Options) (*Frontend, error) {
	if opts.Logger == nil {
		opts.Logger = minalog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	logger := opts.Logger.WithField("component", "mina-frontend")

	rs, err := RuleSet()
	if err != nil {
		return nil, minaerror.Wrap(err, "failed to compile Mina token rules").
			WithOperation("mina.New")
	}
	table, err := Table()
	if err != nil {
		return nil, minaerror.Wrap(err, "failed to build Mina parse table").
			WithOperation("mina.New")
	}

	p, err := parser.New(table, reduceActions(), parser.Options{
		Logger:             opts.Logger,
		MaxErrors:          opts.MaxErrors,
		StopOnLexicalError: opts.Policy == lexer.PolicyHalt,
	})
	if err != nil {
		return nil, minaerror.Wrap(err, "failed to bind Mina reduce actions").
			WithOperation("mina.New")
	}

	logger.Debug("frontend initialized", minalog.Fields{
		"policy":         opts.Policy.String(),
		"states":         table.NumStates(),
		"maxInputLength": opts.MaxInputLength,
		"maxErrors":      opts.MaxErrors,
	})

	return &Frontend{
		rules:  rs,
		parser: p,
		opts:   opts,
		logger: logger,
	}, nil
}

// Options returns the effective options
func (f *Frontend) Options() Options {
	return f.opts
}

func (f *Frontend) newLexer(input string) *lexer.Lexer {
	return lexer.New(f.rules, input, lexer.Options{Policy: f.opts.Policy, Logger: f.opts.Logger})
}

func (f *Frontend) checkInput(input, op string) error {
	if f.opts.MaxInputLength > 0 && len(input) > f.opts.MaxInputLength {
		return minaerror.Newf("input exceeds maximum length: %d > %d", len(input), f.opts.MaxInputLength).
			WithCode(minaerror.CodeInputTooLong).
			WithOperation(op).
			WithDetail("length", len(input)).
			WithDetail("max_length", f.opts.MaxInputLength)
	}
	return nil
}

// Tokenize returns the significant tokens of input, excluding EOF.
// Unrecognized characters appear as ILLEGAL tokens and are also returned
// as a parser.ErrorList of lexical errors.
func (f *Frontend) Tokenize(input string) ([]token.Token, error) {
	if err := f.checkInput(input, "mina.Tokenize"); err != nil {
		return nil, err
	}

	lx := f.newLexer(input)
	var tokens []token.Token
	for tok := range lx.All() {
		if tok.Kind == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}

	if lexErrs := lx.Errors(); len(lexErrs) > 0 {
		list := make(parser.ErrorList, len(lexErrs))
		for i, e := range lexErrs {
			list[i] = e
		}
		return tokens, list
	}
	return tokens, nil
}

// Parse builds the syntax tree of input. A rejected parse returns a nil
// tree and a parser.ErrorList; a broken table returns a *minaerror.Error
// with CodeInternalInconsistency.
func (f *Frontend) Parse(input string) (*ast.Program, error) {
	if err := f.checkInput(input, "mina.Parse"); err != nil {
		return nil, err
	}

	timer := f.logger.StartTimer("parse").WithField("bytes", len(input))

	lx := f.newLexer(input)
	value, err := f.parser.Parse(lx)
	if err != nil {
		timer.Cancel()
		if list, ok := parser.AsErrorList(err); ok {
			f.logger.Info("parse rejected", minalog.Fields{
				"bytes":  len(input),
				"errors": len(list),
				"first":  list[0].Error(),
			})
		}
		return nil, err
	}

	prog, ok := value.(*ast.Program)
	if !ok {
		timer.Cancel()
		return nil, minaerror.Newf("parse produced %T, want *ast.Program", value).
			WithCode(minaerror.CodeInternalInconsistency).
			WithOperation("mina.Parse")
	}
	prog.Range = token.Span{Start: token.Pos{Line: 1, Column: 1}, End: lx.Pos()}

	if err := prog.Validate(); err != nil {
		timer.Cancel()
		inconsistent := minaerror.Wrap(err, "parser produced an invalid tree").
			WithCode(minaerror.CodeInternalInconsistency).
			WithOperation("mina.Parse")
		f.logger.LogError(inconsistent)
		return nil, inconsistent
	}

	timer.WithField("statements", len(prog.Stmts)).Stop()
	return prog, nil
}

// ParseToBytes parses input and encodes the tree with astpb
func (f *Frontend) ParseToBytes(name, input string) ([]byte, *ast.Program, error) {
	prog, err := f.Parse(input)
	if err != nil {
		return nil, nil, err
	}
	data, err := astpb.Marshal(&astpb.Unit{SourceName: name, Root: prog})
	if err != nil {
		return nil, nil, minaerror.Wrap(err, "failed to encode tree").
			WithOperation("mina.ParseToBytes")
	}
	return data, prog, nil
}
