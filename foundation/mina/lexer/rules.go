// File: rules.go
// Title: Lexical Rule Compilation
// Description: Compiles the declarative rule table into anchored regular
//              expressions and implements the maximal-munch match.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package lexer

import (
	"regexp"

	minaerror "github.com/msto63/mina/foundation/core/error"
	"github.com/msto63/mina/foundation/mina/token"
)

// Rule declares one lexical category. Priority is the rule's index in the
// table passed to Compile.
type Rule struct {
	Pattern string
	Kind    token.Kind
	Skip    bool
}

// RuleSet is a compiled, immutable rule table
type RuleSet struct {
	rules []compiledRule
}

type compiledRule struct {
	kind token.Kind
	skip bool
	re   *regexp.Regexp
}

// Compile validates and compiles rules in priority order
func Compile(rules []Rule) (*RuleSet, error) {
	if len(rules) == 0 {
		return nil, minaerror.New("lexer needs at least one rule").
			WithCode(minaerror.CodeInvalidLexRule).
			WithOperation("lexer.Compile")
	}

	rs := &RuleSet{rules: make([]compiledRule, 0, len(rules))}
	for i, r := range rules {
		if r.Pattern == "" {
			return nil, ruleError(i, r, "empty pattern")
		}
		switch {
		case !r.Kind.IsValid():
			return nil, ruleError(i, r, "undefined token kind")
		case r.Kind == token.EOF || r.Kind == token.ILLEGAL || r.Kind == token.ERROR:
			return nil, ruleError(i, r, "reserved token kind")
		}

		re, err := regexp.Compile(`^(?:` + r.Pattern + `)`)
		if err != nil {
			return nil, minaerror.Wrap(err, "invalid lexical rule pattern").
				WithCode(minaerror.CodeInvalidLexRule).
				WithOperation("lexer.Compile").
				WithDetail("rule", i).
				WithDetail("pattern", r.Pattern)
		}
		re.Longest()

		rs.rules = append(rs.rules, compiledRule{
			kind: r.Kind,
			skip: r.Skip || r.Kind.IsSkip(),
			re:   re,
		})
	}
	return rs, nil
}

// MustCompile is like Compile but panics on error. It is meant for rule
// tables defined in source code.
func MustCompile(rules []Rule) *RuleSet {
	rs, err := Compile(rules)
	if err != nil {
		panic(err)
	}
	return rs
}

func ruleError(i int, r Rule, msg string) error {
	return minaerror.New(msg).
		WithCode(minaerror.CodeInvalidLexRule).
		WithOperation("lexer.Compile").
		WithDetail("rule", i).
		WithDetail("kind", r.Kind.String()).
		WithDetail("pattern", r.Pattern)
}

// Len returns the number of rules
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// match returns the winning rule for the start of input. n is 0 when no
// rule produces a non-empty match.
func (rs *RuleSet) match(input string) (kind token.Kind, skip bool, n int) {
	for _, r := range rs.rules {
		loc := r.re.FindStringIndex(input)
		if loc == nil || loc[1] <= n {
			continue
		}
		kind, skip, n = r.kind, r.skip, loc[1]
	}
	return kind, skip, n
}
