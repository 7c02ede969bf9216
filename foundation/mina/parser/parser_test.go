// File: parser_test.go
// Title: Parser Unit Tests
// Description: Tests for the LR driver on a small statement grammar: values,
//              error reporting, recovery, error bounds and table defects.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial test suite

package parser

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"

	minaerror "github.com/msto63/mina/foundation/core/error"
	"github.com/msto63/mina/foundation/mina/grammar"
	"github.com/msto63/mina/foundation/mina/lexer"
	"github.com/msto63/mina/foundation/mina/token"
)

var calcRules = lexer.MustCompile([]lexer.Rule{
	{Pattern: `[ \t\n]+`, Kind: token.WHITESPACE, Skip: true},
	{Pattern: `[0-9]+`, Kind: token.INT},
	{Pattern: `[a-z]+`, Kind: token.IDENT},
	{Pattern: `\+`, Kind: token.PLUS},
	{Pattern: `\*`, Kind: token.STAR},
	{Pattern: `\(`, Kind: token.LPAREN},
	{Pattern: `\)`, Kind: token.RPAREN},
	{Pattern: `;`, Kind: token.SEMICOLON},
})

func calcTable(t testing.TB) *grammar.Table {
	t.Helper()
	b := grammar.NewBuilder("calc")
	b.Left(token.PLUS)
	b.Left(token.STAR)
	b.Rule("P", "program", grammar.N("L"))
	b.Rule("L", "empty")
	b.Rule("L", "append", grammar.N("L"), grammar.N("S"))
	b.Rule("S", "stmt", grammar.N("E"), grammar.T(token.SEMICOLON))
	b.Rule("S", "bad", grammar.Error(), grammar.T(token.SEMICOLON))
	b.Rule("E", "binary", grammar.N("E"), grammar.T(token.PLUS), grammar.N("E"))
	b.Rule("E", "binary", grammar.N("E"), grammar.T(token.STAR), grammar.N("E"))
	b.Rule("E", "paren", grammar.T(token.LPAREN), grammar.N("E"), grammar.T(token.RPAREN))
	b.Rule("E", "atom", grammar.T(token.INT))
	b.Rule("E", "atom", grammar.T(token.IDENT))

	table, err := b.Build(grammar.BuildOptions{Strict: true})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return table
}

// calcActions render the tree as an s-expression
func calcActions() map[string]ReduceFunc {
	return map[string]ReduceFunc{
		"program": func(v []any, _ token.Span) (any, error) {
			return strings.Join(v[0].([]string), " "), nil
		},
		"empty": func(v []any, _ token.Span) (any, error) {
			return []string{}, nil
		},
		"append": func(v []any, _ token.Span) (any, error) {
			return append(v[0].([]string), v[1].(string)), nil
		},
		"stmt": func(v []any, _ token.Span) (any, error) {
			return v[0].(string), nil
		},
		"bad": func(v []any, _ token.Span) (any, error) {
			return "<bad>", nil
		},
		"binary": func(v []any, _ token.Span) (any, error) {
			return fmt.Sprintf("(%s %s %s)", v[1].(token.Token).Text, v[0], v[2]), nil
		},
		"paren": func(v []any, _ token.Span) (any, error) {
			return v[1], nil
		},
		"atom": func(v []any, _ token.Span) (any, error) {
			return v[0].(token.Token).Text, nil
		},
	}
}

func newCalcParser(t testing.TB, opts Options) *Parser {
	t.Helper()
	p, err := New(calcTable(t), calcActions(), opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func parseCalc(t *testing.T, p *Parser, input string, policy lexer.Policy) (any, error) {
	t.Helper()
	return p.Parse(lexer.New(calcRules, input, lexer.Options{Policy: policy}))
}

func TestParser_Valid(t *testing.T) {
	p := newCalcParser(t, Options{})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty input", "", ""},
		{"single statement", "1 + 2;", "(+ 1 2)"},
		{"precedence", "1 + 2 * 3;", "(+ 1 (* 2 3))"},
		{"left associative", "a + b + c;", "(+ (+ a b) c)"},
		{"parentheses", "(1 + 2) * 3;", "(* (+ 1 2) 3)"},
		{"several statements", "1;\n2;\n3;", "1 2 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCalc(t, p, tt.input, lexer.PolicySkip)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func mustErrorList(t *testing.T, got any, err error) ErrorList {
	t.Helper()
	if got != nil {
		t.Errorf("Expected no result on failure, got %v", got)
	}
	list, ok := AsErrorList(err)
	if !ok {
		t.Fatalf("Expected ErrorList, got %T: %v", err, err)
	}
	return list
}

func TestParser_MissingOperand(t *testing.T) {
	p := newCalcParser(t, Options{})
	got, err := parseCalc(t, p, "1 + ;", lexer.PolicySkip)
	list := mustErrorList(t, got, err)

	if len(list) != 1 {
		t.Fatalf("Expected 1 error, got %d: %v", len(list), list)
	}
	se, ok := list[0].(*SyntaxError)
	if !ok {
		t.Fatalf("Expected *SyntaxError, got %T", list[0])
	}
	if se.Span.Start.String() != "1:5" || se.Found.Kind != token.SEMICOLON {
		t.Errorf("Expected ';' at 1:5, got %s at %s", se.Found.Kind, se.Span.Start)
	}
	if !se.Expects(token.INT) || !se.Expects(token.IDENT) {
		t.Errorf("Expected set should contain INT and IDENT, got %v", se.Expected)
	}
	if want := "unexpected ';' at 1:5, expected one of {IDENT, INT, '('}"; se.Error() != want {
		t.Errorf("Expected %q, got %q", want, se.Error())
	}
}

func TestParser_LexicalErrorPolicies(t *testing.T) {
	t.Run("skip", func(t *testing.T) {
		p := newCalcParser(t, Options{})
		got, err := parseCalc(t, p, "1 $ 2;", lexer.PolicySkip)
		list := mustErrorList(t, got, err)

		if len(list) != 2 {
			t.Fatalf("Expected 2 errors, got %d: %v", len(list), list)
		}
		le, ok := list[0].(*lexer.LexicalError)
		if !ok || le.Text != "$" || le.Span.Start.String() != "1:3" {
			t.Errorf("Expected lexical error '$' at 1:3, got %v", list[0])
		}
		se, ok := list[1].(*SyntaxError)
		if !ok || se.Found.Text != "2" || se.Span.Start.String() != "1:5" {
			t.Errorf("Expected syntax error at '2' 1:5, got %v", list[1])
		}
	})

	t.Run("halt", func(t *testing.T) {
		p := newCalcParser(t, Options{StopOnLexicalError: true})
		got, err := parseCalc(t, p, "1 $ 2;", lexer.PolicyHalt)
		list := mustErrorList(t, got, err)

		if len(list) != 1 {
			t.Fatalf("Expected exactly 1 error, got %d: %v", len(list), list)
		}
		if le := list.LexicalErrors(); len(le) != 1 || le[0].Span.Start.String() != "1:3" {
			t.Errorf("Expected lexical error at 1:3, got %v", list)
		}
	})
}

func TestParser_Recovery(t *testing.T) {
	p := newCalcParser(t, Options{})

	tests := []struct {
		name      string
		input     string
		positions []string
	}{
		{"two separated errors", "1 + ; 2 * ; 3;", []string{"1:5", "1:11"}},
		{"error right after recovery is suppressed", "1 + ; + ;", []string{"1:5"}},
		{"error before any statement", ") 1; 2;", []string{"1:1"}},
		{"error inside parentheses", "(1 + ); 2;", []string{"1:6"}},
		{"missing terminator", "1 + 2", []string{"1:6"}},
		{"missing terminator after statements", "1;\n2 + 3", []string{"2:6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCalc(t, p, tt.input, lexer.PolicySkip)
			list := mustErrorList(t, got, err)

			var positions []string
			for _, se := range list.SyntaxErrors() {
				positions = append(positions, se.Span.Start.String())
			}
			if strings.Join(positions, " ") != strings.Join(tt.positions, " ") {
				t.Errorf("Expected errors at %v, got %v (%v)", tt.positions, positions, list)
			}
		})
	}
}

func TestParser_TruncatedPrefix(t *testing.T) {
	p := newCalcParser(t, Options{})
	program := "a + (b * 2);"

	for cut := 1; cut < len(program); cut++ {
		prefix := program[:cut]
		_, err := parseCalc(t, p, prefix, lexer.PolicySkip)
		list, ok := AsErrorList(err)
		if !ok || len(list) == 0 {
			t.Errorf("prefix %q: Expected syntax errors, got %v", prefix, err)
			continue
		}
		last := list[len(list)-1].(*SyntaxError)
		if last.Span.Start.Offset < len(strings.TrimRight(prefix, " ")) {
			t.Errorf("prefix %q: error at offset %d is before the truncation point", prefix, last.Span.Start.Offset)
		}
	}
}

func TestParser_ErrorBound(t *testing.T) {
	p := newCalcParser(t, Options{})
	pieces := []string{"1", "x", "+", "*", "(", ")", ";", "$"}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		n := 1 + rng.Intn(30)
		parts := make([]string, n)
		for j := range parts {
			parts[j] = pieces[rng.Intn(len(pieces))]
		}
		input := strings.Join(parts, " ")

		_, err := parseCalc(t, p, input, lexer.PolicySkip)
		if err == nil {
			continue
		}
		list, ok := AsErrorList(err)
		if !ok {
			t.Fatalf("input %q: unexpected error type %T: %v", input, err, err)
		}
		if len(list) > n {
			t.Errorf("input %q: %d errors for %d tokens", input, len(list), n)
		}
	}
}

func TestParser_MaxErrors(t *testing.T) {
	p := newCalcParser(t, Options{MaxErrors: 1})
	_, err := parseCalc(t, p, "1 + ; 2 * ; 3 + ;", lexer.PolicySkip)
	list, ok := AsErrorList(err)
	if !ok || len(list) != 1 {
		t.Errorf("Expected exactly 1 error, got %v", err)
	}
}

func TestParser_SpansPassedToActions(t *testing.T) {
	actions := calcActions()
	var spans []string
	actions["binary"] = func(v []any, span token.Span) (any, error) {
		spans = append(spans, span.String())
		return "", nil
	}
	p, err := New(calcTable(t), actions, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := parseCalc(t, p, "1 +\n  22;", lexer.PolicySkip); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(spans) != 1 || spans[0] != "1:1-2:5" {
		t.Errorf("Expected span 1:1-2:5, got %v", spans)
	}
}

func TestNew_MissingAction(t *testing.T) {
	actions := calcActions()
	delete(actions, "paren")

	_, err := New(calcTable(t), actions, Options{})
	if !minaerror.HasCode(err, minaerror.CodeInternalInconsistency) {
		t.Errorf("Expected %s, got %v", minaerror.CodeInternalInconsistency, err)
	}
	if _, err := New(nil, calcActions(), Options{}); err == nil {
		t.Error("Expected error for nil table")
	}
}

func TestParser_ActionFailureIsInternal(t *testing.T) {
	actions := calcActions()
	actions["atom"] = func(v []any, _ token.Span) (any, error) {
		return nil, errors.New("boom")
	}
	p, err := New(calcTable(t), actions, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = parseCalc(t, p, "1;", lexer.PolicySkip)
	if _, isList := AsErrorList(err); isList {
		t.Fatal("action failure must not be reported as a syntax error")
	}
	if !minaerror.HasCode(err, minaerror.CodeInternalInconsistency) {
		t.Errorf("Expected %s, got %v", minaerror.CodeInternalInconsistency, err)
	}
	if minaerror.GetSeverity(err) != minaerror.SeverityCritical {
		t.Errorf("Expected critical severity, got %s", minaerror.GetSeverity(err))
	}
}

func TestErrorList(t *testing.T) {
	list := ErrorList{
		&lexer.LexicalError{Text: "$", Span: token.Span{Start: token.Pos{Offset: 2, Line: 1, Column: 3}}},
		&SyntaxError{Message: "unexpected end of input", Expected: []token.Kind{token.SEMICOLON}},
	}
	if got := strings.Count(list.Error(), "\n"); got != 1 {
		t.Errorf("Expected one line per error, got %q", list.Error())
	}

	var wrapped error = fmt.Errorf("parse: %w", list)
	var se *SyntaxError
	if !errors.As(wrapped, &se) {
		t.Error("errors.As should find the SyntaxError in a wrapped list")
	}
	if l, ok := AsErrorList(wrapped); !ok || len(l) != 2 {
		t.Errorf("AsErrorList() = %v, %v", l, ok)
	}
}

func TestParser_ConcurrentUse(t *testing.T) {
	p := newCalcParser(t, Options{})

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			input := fmt.Sprintf("%d + %d * x;", n, n)
			got, err := p.Parse(lexer.New(calcRules, input, lexer.Options{}))
			want := fmt.Sprintf("(+ %d (* %d x))", n, n)
			if err != nil || got != want {
				errs <- fmt.Errorf("input %q: got %v, %v", input, got, err)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestState_String(t *testing.T) {
	for st, want := range map[State]string{
		Scanning: "scanning", Reducing: "reducing", ErrorRecovering: "error-recovering",
		Accepted: "accepted", Rejected: "rejected", State(9): "unknown",
	} {
		if st.String() != want {
			t.Errorf("Expected %s, got %s", want, st.String())
		}
	}
}

func BenchmarkParser_Parse(b *testing.B) {
	p := newCalcParser(b, Options{})
	input := strings.Repeat("a + (b * 2) + 3 * c;\n", 200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Parse(lexer.New(calcRules, input, lexer.Options{})); err != nil {
			b.Fatal(err)
		}
	}
}
