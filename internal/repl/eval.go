package repl

import (
	"fmt"
	"strings"

	"github.com/msto63/mina/foundation/mina"
	"github.com/msto63/mina/foundation/mina/ast"
	"github.com/msto63/mina/foundation/mina/parser"
)

// Mode selects what a plain input line is run through
type Mode int

const (
	// ModeParse prints the canonical form of the parsed program
	ModeParse Mode = iota

	// ModeLex prints one token per line
	ModeLex

	// ModeTree prints the indented syntax tree
	ModeTree
)

// String returns the command name of the mode
func (m Mode) String() string {
	switch m {
	case ModeParse:
		return "parse"
	case ModeLex:
		return "lex"
	case ModeTree:
		return "tree"
	default:
		return "unknown"
	}
}

// ResultKind classifies a Result for rendering
type ResultKind int

const (
	ResultOutput ResultKind = iota
	ResultDiagnostics
	ResultInfo
	ResultQuit
)

// Result is the response to one input line
type Result struct {
	Kind ResultKind
	Text string
}

const helpText = `Commands:
  :parse [text]  parse text, or switch to parse mode
  :lex [text]    tokenize text, or switch to lex mode
  :tree [text]   print the syntax tree, or switch to tree mode
  :mode          show the current mode
  :help          show this help
  :quit          leave the shell
Every other line is one input unit for the current mode.`

// Evaluator runs input lines through a front-end. It holds the current
// mode and is not safe for concurrent use.
type Evaluator struct {
	fe   *mina.Frontend
	mode Mode
}

// NewEvaluator creates an evaluator in parse mode
func NewEvaluator(fe *mina.Frontend) *Evaluator {
	return &Evaluator{fe: fe, mode: ModeParse}
}

// Mode returns the current mode
func (e *Evaluator) Mode() Mode {
	return e.mode
}

// Eval handles one line: a command or an input unit. Blank lines are
// skipped and give an empty info result.
func (e *Evaluator) Eval(line string) Result {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Result{Kind: ResultInfo}
	}
	if !strings.HasPrefix(trimmed, ":") {
		return e.run(e.mode, line)
	}

	name, arg, _ := strings.Cut(trimmed[1:], " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "q", "quit", "exit":
		return Result{Kind: ResultQuit}
	case "h", "help":
		return Result{Kind: ResultInfo, Text: helpText}
	case "mode":
		return Result{Kind: ResultInfo, Text: "mode: " + e.mode.String()}
	case "parse", "lex", "tree":
		mode := map[string]Mode{"parse": ModeParse, "lex": ModeLex, "tree": ModeTree}[name]
		if arg == "" {
			e.mode = mode
			return Result{Kind: ResultInfo, Text: "mode: " + mode.String()}
		}
		return e.run(mode, arg)
	default:
		return Result{Kind: ResultDiagnostics, Text: fmt.Sprintf("unknown command :%s (try :help)", name)}
	}
}

func (e *Evaluator) run(mode Mode, input string) Result {
	if mode == ModeLex {
		return e.lex(input)
	}

	prog, err := e.fe.Parse(input)
	if err != nil {
		return diagnostics(err)
	}
	if mode == ModeTree {
		return Result{Kind: ResultOutput, Text: strings.TrimRight(ast.Dump(prog), "\n")}
	}
	if len(prog.Stmts) == 0 {
		return Result{Kind: ResultInfo, Text: "(empty program)"}
	}
	return Result{Kind: ResultOutput, Text: prog.String()}
}

func (e *Evaluator) lex(input string) Result {
	tokens, err := e.fe.Tokenize(input)
	if tokens == nil && err != nil {
		return diagnostics(err)
	}

	lines := make([]string, 0, len(tokens)+1)
	for _, tok := range tokens {
		lines = append(lines, tok.String())
	}
	if err != nil {
		lines = append(lines, err.Error())
		return Result{Kind: ResultDiagnostics, Text: strings.Join(lines, "\n")}
	}
	return Result{Kind: ResultOutput, Text: strings.Join(lines, "\n")}
}

func diagnostics(err error) Result {
	if list, ok := parser.AsErrorList(err); ok {
		return Result{Kind: ResultDiagnostics, Text: list.Error()}
	}
	return Result{Kind: ResultDiagnostics, Text: "error: " + err.Error()}
}
