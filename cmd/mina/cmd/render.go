package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/msto63/mina/foundation/mina/ast"
	"github.com/msto63/mina/foundation/mina/parser"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
)

// treeFormats are the output formats of a syntax tree
var treeFormats = []string{"text", "tree", "json", "yaml"}

// readSource returns the unit to process: the --expr text, the named file,
// or stdin for no argument or "-"
func readSource(cmd *cobra.Command, expr string, args []string) (name, text string, err error) {
	switch {
	case expr != "":
		return "<expr>", expr, nil
	case len(args) == 0 || args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	default:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read source: %w", err)
		}
		return args[0], string(data), nil
	}
}

// writeTree renders prog in one of treeFormats
func writeTree(w io.Writer, prog *ast.Program, format string) error {
	switch format {
	case "text":
		if s := prog.String(); s != "" {
			_, err := fmt.Fprintln(w, s)
			return err
		}
		return nil
	case "tree":
		_, err := io.WriteString(w, ensureNewline(ast.Dump(prog)))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ast.ToMap(prog))
	case "yaml":
		return writeYAML(w, ast.ToMap(prog))
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(treeFormats, ", "))
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// reportDiagnostics prints a rejected unit's errors, one per line,
// prefixed with the source name. Other errors are returned unchanged.
func reportDiagnostics(w io.Writer, name string, err error) error {
	list, ok := parser.AsErrorList(err)
	if !ok {
		return err
	}
	for _, e := range list {
		fmt.Fprintln(w, errorStyle.Render(name+": "+e.Error()))
	}
	return errRejected
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
