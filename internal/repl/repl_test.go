package repl

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/mina/foundation/mina"
	"github.com/msto63/mina/foundation/mina/lexer"
)

func newFrontend(t *testing.T, policy lexer.Policy) *mina.Frontend {
	t.Helper()
	fe, err := mina.New(mina.Options{Policy: policy})
	if err != nil {
		t.Fatalf("mina.New() error = %v", err)
	}
	return fe
}

func TestEvaluator_Eval(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind ResultKind
		want string
	}{
		{"parse", "1 + 2 * 3;", ResultOutput, "(1 + (2 * 3));"},
		{"parse let", "let x = f(1, y);", ResultOutput, "let x = f(1, y);"},
		{"empty program", "// nothing", ResultInfo, "(empty program)"},
		{"syntax error", "1 + ;", ResultDiagnostics, "unexpected ';' at 1:5"},
		{"lexical error", "1 $ 2;", ResultDiagnostics, "1:3"},
		{"one-shot lex", ":lex let x", ResultOutput, "LET 'let' 1:1\nIDENT 'x' 1:5"},
		{"one-shot tree", ":tree 1;", ResultOutput, "Program"},
		{"help", ":help", ResultInfo, ":quit"},
		{"mode", ":mode", ResultInfo, "mode: parse"},
		{"unknown command", ":frobnicate", ResultDiagnostics, "unknown command :frobnicate"},
		{"quit", ":quit", ResultQuit, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvaluator(newFrontend(t, lexer.PolicySkip))
			got := e.Eval(tt.line)
			if got.Kind != tt.kind {
				t.Errorf("Expected kind %d, got %d (%q)", tt.kind, got.Kind, got.Text)
			}
			if !strings.Contains(got.Text, tt.want) {
				t.Errorf("Expected %q in %q", tt.want, got.Text)
			}
		})
	}
}

func TestEvaluator_SkipsBlankLines(t *testing.T) {
	e := NewEvaluator(newFrontend(t, lexer.PolicySkip))

	for _, mode := range []string{":parse", ":lex", ":tree"} {
		e.Eval(mode)
		for _, line := range []string{"", "   ", "\t\n"} {
			r := e.Eval(line)
			if r.Kind != ResultInfo || r.Text != "" {
				t.Errorf("%s %q: Expected empty info result, got kind %d %q", mode, line, r.Kind, r.Text)
			}
		}
	}
}

func TestEvaluator_ModeSwitch(t *testing.T) {
	e := NewEvaluator(newFrontend(t, lexer.PolicySkip))

	if r := e.Eval(":lex"); r.Text != "mode: lex" {
		t.Errorf("Expected mode: lex, got %q", r.Text)
	}
	if e.Mode() != ModeLex {
		t.Fatalf("Expected lex mode, got %s", e.Mode())
	}

	r := e.Eval("a<=b")
	want := "IDENT 'a' 1:1\nLE '<=' 1:2\nIDENT 'b' 1:4"
	if r.Text != want {
		t.Errorf("Expected %q, got %q", want, r.Text)
	}

	// One-shot commands leave the mode alone
	e.Eval(":parse 1;")
	if e.Mode() != ModeLex {
		t.Errorf("Expected lex mode after one-shot parse, got %s", e.Mode())
	}
}

func TestEvaluator_LexKeepsTokensOnError(t *testing.T) {
	e := NewEvaluator(newFrontend(t, lexer.PolicySkip))

	r := e.Eval(":lex 1 $ 2")
	if r.Kind != ResultDiagnostics {
		t.Fatalf("Expected diagnostics, got %d", r.Kind)
	}
	for _, want := range []string{"INT '1' 1:1", "ILLEGAL '$' 1:3", "INT '2' 1:5"} {
		if !strings.Contains(r.Text, want) {
			t.Errorf("Expected %q in %q", want, r.Text)
		}
	}
}

func TestEvaluator_HaltPolicy(t *testing.T) {
	e := NewEvaluator(newFrontend(t, lexer.PolicyHalt))

	r := e.Eval("1 $ 2;")
	if r.Kind != ResultDiagnostics {
		t.Fatalf("Expected diagnostics, got %d", r.Kind)
	}
	if strings.Count(r.Text, "\n") != 0 {
		t.Errorf("Expected exactly one error, got %q", r.Text)
	}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func submit(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(key(tea.KeyEnter))
	return next.(Model), cmd
}

func TestModel_SubmitAppendsTranscript(t *testing.T) {
	m := NewModel(newFrontend(t, lexer.PolicySkip), DefaultConfig())
	before := len(m.Transcript())

	m, cmd := submit(t, m, "1 + 2;")
	if cmd != nil {
		t.Errorf("Expected no command, got %v", cmd)
	}

	transcript := m.Transcript()
	if len(transcript) != before+2 {
		t.Fatalf("Expected %d entries, got %d", before+2, len(transcript))
	}
	if !strings.Contains(transcript[before], "1 + 2;") {
		t.Errorf("Expected input echo, got %q", transcript[before])
	}
	if !strings.Contains(transcript[before+1], "(1 + 2);") {
		t.Errorf("Expected parse output, got %q", transcript[before+1])
	}
	if m.input.Value() != "" {
		t.Errorf("Expected input to be cleared, got %q", m.input.Value())
	}
}

func TestModel_BlankLineIgnored(t *testing.T) {
	m := NewModel(newFrontend(t, lexer.PolicySkip), DefaultConfig())
	before := len(m.Transcript())

	m, _ = submit(t, m, "   ")
	if len(m.Transcript()) != before {
		t.Errorf("Expected blank line to be ignored, got %d entries", len(m.Transcript()))
	}
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(newFrontend(t, lexer.PolicySkip), DefaultConfig())

	m, cmd := submit(t, m, ":quit")
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("Expected tea.QuitMsg, got %T", cmd())
	}
	if m.View() != "" {
		t.Errorf("Expected empty view after quit, got %q", m.View())
	}
}

func TestModel_History(t *testing.T) {
	m := NewModel(newFrontend(t, lexer.PolicySkip), Config{Prompt: "> ", HistorySize: 2})

	for _, line := range []string{"1;", "2;", "2;", "3;"} {
		m, _ = submit(t, m, line)
	}
	if len(m.history) != 2 || m.history[0] != "2;" || m.history[1] != "3;" {
		t.Fatalf("Expected history [2; 3;], got %v", m.history)
	}

	steps := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyUp, "3;"},
		{tea.KeyUp, "2;"},
		{tea.KeyUp, "2;"},
		{tea.KeyDown, "3;"},
		{tea.KeyDown, ""},
	}
	for i, step := range steps {
		next, _ := m.Update(key(step.key))
		m = next.(Model)
		if got := m.input.Value(); got != step.want {
			t.Errorf("step %d: Expected %q, got %q", i, step.want, got)
		}
	}
}

func TestModel_WindowResize(t *testing.T) {
	m := NewModel(newFrontend(t, lexer.PolicySkip), DefaultConfig())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	if m.viewport.Width != 120 || m.viewport.Height != 40-chromeHeight {
		t.Errorf("Expected viewport 120x%d, got %dx%d", 40-chromeHeight, m.viewport.Width, m.viewport.Height)
	}
	if !strings.Contains(m.View(), "mode") {
		t.Errorf("Expected status bar in view")
	}
}
