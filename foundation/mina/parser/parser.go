// File: parser.go
// Title: LR Parse Driver
// Description: Runs the shift/reduce loop over a token source, builds values
//              through reduce functions and recovers from syntax errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Reductions read without copying productions

package parser

import (
	minaerror "github.com/msto63/mina/foundation/core/error"
	minalog "github.com/msto63/mina/foundation/core/log"
	"github.com/msto63/mina/foundation/mina/grammar"
	"github.com/msto63/mina/foundation/mina/lexer"
	"github.com/msto63/mina/foundation/mina/token"
)

// recoveryShifts is the number of tokens that must be shifted after a
// syntax error before the next one is reported
const recoveryShifts = 3

// ReduceFunc builds the semantic value of a production from the values of
// its right-hand side, left to right. Terminals contribute their
// token.Token. span covers the non-empty children.
type ReduceFunc func(values []any, span token.Span) (any, error)

// TokenSource supplies tokens on demand. *lexer.Lexer satisfies it.
type TokenSource interface {
	Next() token.Token
}

// Options configures a Parser
type Options struct {
	Logger *minalog.Logger

	// MaxErrors stops the parse once this many errors are collected.
	// Zero means no limit.
	MaxErrors int

	// StopOnLexicalError rejects the parse at the first ILLEGAL token
	StopOnLexicalError bool
}

// Parser is a reusable, concurrency-safe driver for one table
type Parser struct {
	table   *grammar.Table
	actions []ReduceFunc
	opts    Options
	logger  *minalog.Logger
}

// New binds reduce functions to the table's production labels. Every
// label must have a function.
func New(table *grammar.Table, actions map[string]ReduceFunc, opts Options) (*Parser, error) {
	if table == nil {
		return nil, minaerror.New("parser needs a table").
			WithCode(minaerror.CodeInternalInconsistency).
			WithOperation("parser.New")
	}

	logger := opts.Logger
	if logger == nil {
		logger = minalog.Discard()
	}

	prods := table.Productions()
	bound := make([]ReduceFunc, len(prods))
	for _, p := range prods[1:] {
		fn, ok := actions[p.Label]
		if !ok || fn == nil {
			return nil, minaerror.Newf("no reduce action for label %q", p.Label).
				WithCode(minaerror.CodeInternalInconsistency).
				WithOperation("parser.New").
				WithDetail("production", p.String())
		}
		bound[p.Index] = fn
	}

	return &Parser{
		table:   table,
		actions: bound,
		opts:    opts,
		logger:  logger.WithField("component", "mina-parser"),
	}, nil
}

// Table returns the parse table
func (p *Parser) Table() *grammar.Table {
	return p.table
}

type entry struct {
	state int
	value any
	span  token.Span
}

type session struct {
	p     *Parser
	src   TokenSource
	stack []entry
	errs  ErrorList

	state   State
	errflag int
	pending token.Token
	tokens  int
}

// Parse consumes src up to EOF. It returns the value of the start symbol,
// an ErrorList, or a *minaerror.Error for an inconsistent table.
func (p *Parser) Parse(src TokenSource) (any, error) {
	s := &session{
		p:     p,
		src:   src,
		stack: make([]entry, 1, 64),
	}
	p.logger.Debug("parse started")
	return s.run()
}

func (s *session) setState(st State) {
	if s.state != st {
		s.p.logger.Trace("session state", minalog.Fields{"from": s.state.String(), "to": st.String()})
		s.state = st
	}
}

func (s *session) top() int {
	return s.stack[len(s.stack)-1].state
}

func (s *session) run() (any, error) {
	table := s.p.table

	la, ok := s.next()
	if !ok {
		return s.reject()
	}

	for {
		act := table.Action(s.top(), la.Kind)

		switch act.Type {
		case grammar.ActionShift:
			s.stack = append(s.stack, entry{state: act.Arg, value: la, span: la.Span})
			s.p.logger.Trace("shift", minalog.Fields{"token": la.Kind.String(), "state": act.Arg})

			if la.Kind == token.ERROR {
				la = s.pending
				continue
			}
			if s.errflag > 0 {
				s.errflag--
				if s.errflag == 0 {
					s.setState(Scanning)
				}
			}
			if la, ok = s.next(); !ok {
				return s.reject()
			}

		case grammar.ActionReduce:
			if err := s.reduce(act.Arg, la); err != nil {
				return nil, err
			}

		case grammar.ActionAccept:
			if len(s.errs) > 0 {
				return s.reject()
			}
			if len(s.stack) != 2 {
				return nil, s.inconsistency("accept with unexpected stack depth", minalog.Fields{"depth": len(s.stack)})
			}
			s.setState(Accepted)
			s.p.logger.Debug("parse accepted", minalog.Fields{"tokens": s.tokens})
			return s.stack[1].value, nil

		default:
			if la.Kind == token.ERROR {
				return nil, s.inconsistency("recovery state rejected the error token", minalog.Fields{"state": s.top()})
			}
			if la, ok = s.recover(la); !ok {
				return s.reject()
			}
		}
	}
}

// next pulls the next significant token. ILLEGAL tokens become lexical
// errors. ok is false when the parse must stop.
func (s *session) next() (token.Token, bool) {
	for {
		tok := s.src.Next()
		switch {
		case tok.Kind.IsSkip():
			continue
		case tok.Kind == token.ILLEGAL:
			s.errs = append(s.errs, &lexer.LexicalError{Text: tok.Text, Span: tok.Span})
			s.tokens++
			if s.p.opts.StopOnLexicalError || s.limitReached() {
				return tok, false
			}
			continue
		}
		if tok.Kind != token.EOF {
			s.tokens++
		}
		return tok, true
	}
}

func (s *session) limitReached() bool {
	return s.p.opts.MaxErrors > 0 && len(s.errs) >= s.p.opts.MaxErrors
}

func (s *session) reduce(idx int, la token.Token) error {
	s.setState(Reducing)
	defer func() {
		if s.errflag > 0 {
			s.setState(ErrorRecovering)
		} else {
			s.setState(Scanning)
		}
	}()

	n, nt, ok := s.p.table.Reduction(idx)
	if !ok || idx == 0 {
		return s.inconsistency("reduce by invalid production", minalog.Fields{"production": idx})
	}
	if n >= len(s.stack) {
		return s.inconsistency("stack underflow on reduce", minalog.Fields{
			"production": s.p.table.Production(idx).String(),
			"depth":      len(s.stack),
		})
	}

	popped := s.stack[len(s.stack)-n:]
	values := make([]any, n)
	span := token.Span{Start: la.Span.Start, End: la.Span.Start}
	first := true
	for i, e := range popped {
		values[i] = e.value
		if e.span.IsEmpty() {
			continue
		}
		if first {
			span.Start = e.span.Start
			first = false
		}
		span.End = e.span.End
	}

	value, err := s.p.actions[idx](values, span)
	if err != nil {
		return s.inconsistency("reduce action failed: "+err.Error(), minalog.Fields{"production": s.p.table.Production(idx).String()})
	}

	s.stack = s.stack[:len(s.stack)-n]
	next, ok := s.p.table.Goto(s.top(), nt)
	if !ok {
		return s.inconsistency("missing goto", minalog.Fields{
			"state":       s.top(),
			"nonterminal": s.p.table.Production(idx).LHS,
		})
	}
	s.stack = append(s.stack, entry{state: next, value: value, span: span})
	if s.p.logger.IsLevelEnabled(minalog.LevelTrace) {
		s.p.logger.Trace("reduce", minalog.Fields{"production": s.p.table.Production(idx).String(), "goto": next})
	}
	return nil
}

// recover handles an error action on la and returns the lookahead to
// continue with. ok is false when the parse must be rejected.
func (s *session) recover(la token.Token) (token.Token, bool) {
	s.setState(ErrorRecovering)

	if s.errflag == 0 {
		state := s.top()
		se := &SyntaxError{
			Message:  unexpected(la),
			Span:     la.Span,
			Expected: s.p.table.Expected(state),
			Found:    la,
		}
		s.errs = append(s.errs, se)
		s.p.logger.Trace("syntax error", minalog.Fields{"state": state, "error": se.Error()})
		if s.limitReached() {
			return la, false
		}
	}

	if s.errflag == recoveryShifts {
		if la.Kind == token.EOF {
			return la, false
		}
		s.p.logger.Trace("discard", minalog.Fields{"token": la.Kind.String(), "pos": la.Span.Start.String()})
		return s.next()
	}

	s.errflag = recoveryShifts
	for !s.resumable() {
		s.stack = s.stack[:len(s.stack)-1]
		if len(s.stack) == 0 {
			s.p.logger.Trace("recovery exhausted the stack")
			return la, false
		}
	}

	s.pending = la
	return token.Token{Kind: token.ERROR, Span: token.Span{Start: la.Span.Start, End: la.Span.Start}}, true
}

// resumable reports whether the current stack, fed the error token,
// reaches a shift of it. Reductions are simulated on a view of the stack:
// the live entries below depth plus the states pushed since.
func (s *session) resumable() bool {
	table := s.p.table
	if table.Action(s.top(), token.ERROR).Type == grammar.ActionError {
		return false
	}

	depth := len(s.stack)
	var pushed []int
	top := func() int {
		if len(pushed) > 0 {
			return pushed[len(pushed)-1]
		}
		return s.stack[depth-1].state
	}

	for steps := 0; steps <= table.NumStates()+len(s.stack); steps++ {
		act := table.Action(top(), token.ERROR)
		switch act.Type {
		case grammar.ActionShift:
			return true
		case grammar.ActionReduce:
			n, nt, ok := table.Reduction(act.Arg)
			if !ok || n >= depth+len(pushed) {
				return false
			}
			if n <= len(pushed) {
				pushed = pushed[:len(pushed)-n]
			} else {
				depth -= n - len(pushed)
				pushed = pushed[:0]
			}
			next, ok := table.Goto(top(), nt)
			if !ok {
				return false
			}
			pushed = append(pushed, next)
		default:
			return false
		}
	}
	return false
}

func (s *session) reject() (any, error) {
	s.setState(Rejected)
	if len(s.errs) == 0 {
		return nil, s.inconsistency("parse rejected without errors", nil)
	}
	s.p.logger.Debug("parse rejected", minalog.Fields{"errors": len(s.errs), "tokens": s.tokens})
	return nil, s.errs
}

func (s *session) inconsistency(msg string, fields minalog.Fields) error {
	err := minaerror.New(msg).
		WithCode(minaerror.CodeInternalInconsistency).
		WithOperation("parser.Parse").
		WithDetails(fields)
	s.p.logger.LogError(err)
	return err
}
