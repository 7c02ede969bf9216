// File: builder.go
// Title: Grammar Builder
// Description: Declarative construction of productions and precedence levels.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Production copies for the table

package grammar

import (
	"fmt"
	"slices"
	"strings"

	minaerror "github.com/msto63/mina/foundation/core/error"
	minalog "github.com/msto63/mina/foundation/core/log"
	"github.com/msto63/mina/foundation/mina/token"
)

const acceptSymbol = "$accept"

// Production is one rule LHS -> RHS. Label selects the reduce action; several
// productions may share a label.
type Production struct {
	Index int
	Label string
	LHS   string
	RHS   []Symbol

	lhsID int
	prec  Level
}

// Prec sets the precedence of the production, like yacc's %prec
func (p *Production) Prec(l Level) *Production {
	p.prec = l
	return p
}

func (p *Production) clone() *Production {
	cp := *p
	cp.RHS = slices.Clone(p.RHS)
	return &cp
}

// Precedence returns the effective precedence after Build
func (p *Production) Precedence() Level {
	return p.prec
}

// Nonterminal returns the index of the left-hand side, valid after Build
func (p *Production) Nonterminal() int {
	return p.lhsID
}

// String renders the production as "LHS -> a B c"
func (p *Production) String() string {
	var sb strings.Builder
	sb.WriteString(p.LHS)
	sb.WriteString(" ->")
	if len(p.RHS) == 0 {
		sb.WriteString(" ε")
	}
	for _, s := range p.RHS {
		sb.WriteByte(' ')
		sb.WriteString(s.Name())
	}
	return sb.String()
}

// Builder collects a grammar definition
type Builder struct {
	name        string
	productions []*Production
	levels      []Level
	termPrec    map[token.Kind]Level
	start       string
	errs        []string
}

// NewBuilder creates an empty grammar. Terminals are the token kinds.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:     name,
		termPrec: make(map[token.Kind]Level),
	}
}

// Left declares a left-associative level for kinds
func (b *Builder) Left(kinds ...token.Kind) Level {
	return b.declare(AssocLeft, kinds)
}

// Right declares a right-associative level for kinds. With no kinds it
// creates a level usable only through Prec.
func (b *Builder) Right(kinds ...token.Kind) Level {
	return b.declare(AssocRight, kinds)
}

// NonAssoc declares a non-associative level for kinds
func (b *Builder) NonAssoc(kinds ...token.Kind) Level {
	return b.declare(AssocNonAssoc, kinds)
}

func (b *Builder) declare(assoc Assoc, kinds []token.Kind) Level {
	lvl := Level{rank: len(b.levels) + 1, assoc: assoc}
	b.levels = append(b.levels, lvl)
	for _, k := range kinds {
		if _, dup := b.termPrec[k]; dup {
			b.errs = append(b.errs, fmt.Sprintf("terminal %s has more than one precedence", k))
			continue
		}
		b.termPrec[k] = lvl
	}
	return lvl
}

// Rule adds a production. The first rule's LHS is the start symbol unless
// Start is called.
func (b *Builder) Rule(lhs, label string, rhs ...Symbol) *Production {
	p := &Production{
		Index: len(b.productions) + 1,
		Label: label,
		LHS:   lhs,
		RHS:   rhs,
	}
	b.productions = append(b.productions, p)
	return p
}

// Start sets the start symbol
func (b *Builder) Start(lhs string) {
	b.start = lhs
}

// BuildOptions configures table construction
type BuildOptions struct {
	// Strict fails the build when a conflict could not be resolved by
	// precedence.
	Strict bool
	Logger *minalog.Logger
}

// Build constructs the LALR(1) table
func (b *Builder) Build(opts BuildOptions) (*Table, error) {
	logger := opts.Logger
	if logger == nil {
		logger = minalog.Discard()
	}
	logger = logger.WithField("component", "mina-grammar").WithField("grammar", b.name)
	timer := logger.StartTimer("grammar build")

	if err := b.validate(); err != nil {
		timer.StopWithError(err)
		return nil, err
	}

	g := newAutomaton(b)
	g.computeNullable()
	g.computeFirst()
	g.buildLR0()
	timer.Checkpoint("lr0", minalog.Fields{"states": len(g.states)})
	g.computeLookaheads()

	table := g.buildTable()
	unresolved := table.Unresolved()
	timer.WithField("states", table.NumStates()).
		WithField("conflicts", len(table.conflicts)).
		WithField("unresolved", len(unresolved)).
		Stop()

	if opts.Strict && len(unresolved) > 0 {
		return nil, minaerror.Newf("grammar %s has %d unresolved conflicts", b.name, len(unresolved)).
			WithCode(minaerror.CodeGrammarConflict).
			WithOperation("grammar.Build").
			WithDetail("first_conflict", unresolved[0].String())
	}

	for _, c := range unresolved {
		logger.Warn("unresolved conflict", minalog.Fields{"conflict": c.String()})
	}
	return table, nil
}

func (b *Builder) validate() error {
	errs := append([]string(nil), b.errs...)

	if len(b.productions) == 0 {
		errs = append(errs, "grammar has no productions")
	}
	if b.start == "" && len(b.productions) > 0 {
		b.start = b.productions[0].LHS
	}

	defined := make(map[string]bool)
	for _, p := range b.productions {
		defined[p.LHS] = true
		if p.Label == "" {
			errs = append(errs, fmt.Sprintf("production %s has no label", p))
		}
		if p.LHS == acceptSymbol {
			errs = append(errs, fmt.Sprintf("%s is reserved", acceptSymbol))
		}
	}
	if b.start != "" && !defined[b.start] {
		errs = append(errs, fmt.Sprintf("start symbol %s has no productions", b.start))
	}

	for _, p := range b.productions {
		for _, s := range p.RHS {
			switch {
			case s.terminal && (!s.kind.IsValid() || s.kind == token.EOF || s.kind == token.ILLEGAL):
				errs = append(errs, fmt.Sprintf("production %s uses reserved terminal %s", p, s.kind))
			case !s.terminal && !defined[s.name]:
				errs = append(errs, fmt.Sprintf("nonterminal %s is used but has no productions", s.name))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return minaerror.New(errs[0]).
		WithCode(minaerror.CodeInvalidGrammar).
		WithOperation("grammar.Build").
		WithDetail("grammar", b.name).
		WithDetail("problems", len(errs))
}
