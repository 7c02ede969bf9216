package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	minaerror "github.com/msto63/mina/foundation/core/error"
	"github.com/msto63/mina/foundation/mina/ast"
	"github.com/msto63/mina/internal/artifact"
)

var (
	parseExpr   string
	parseFormat string
	parseOut    string
	parseStore  bool
	parseName   string
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse one input unit",
	Long: `Parses one input unit and prints its syntax tree, or every
lexical and syntax error found.

Formats:
  text   canonical source form, fully parenthesized (default)
  tree   indented node dump with spans
  json   node tree as JSON
  yaml   node tree as YAML
  pb     versioned binary encoding (use --out for a file)

Examples:
  mina parse prog.mina
  mina parse -e '1 + 2 * 3;' -f tree
  mina parse prog.mina -f pb -o prog.minapb
  mina parse prog.mina --store`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseExpr, "expr", "e", "", "parse this text instead of a file")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "text", "output format (text, tree, json, yaml, pb)")
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "write output to this file instead of stdout")
	parseCmd.Flags().BoolVar(&parseStore, "store", false, "save the encoded tree in the artifact store")
	parseCmd.Flags().StringVar(&parseName, "name", "", "artifact and source name (default: file name)")
}

func runParse(cmd *cobra.Command, args []string) error {
	if parseFormat != "pb" && !slices.Contains(treeFormats, parseFormat) {
		return fmt.Errorf("unknown format %q (want one of %s, pb)", parseFormat, strings.Join(treeFormats, ", "))
	}

	name, text, err := readSource(cmd, parseExpr, args)
	if err != nil {
		return err
	}
	if parseName != "" {
		name = parseName
	}

	fe, err := newFrontend()
	if err != nil {
		return err
	}

	encoded, prog, err := fe.ParseToBytes(name, text)
	if err != nil {
		return reportDiagnostics(cmd.ErrOrStderr(), name, err)
	}

	if parseStore || cfg.Store.Enabled {
		if err := storeArtifact(cmd, name, text, encoded); err != nil {
			return err
		}
	}

	if parseOut == "" {
		return writeParseOutput(cmd.OutOrStdout(), prog, encoded)
	}

	f, err := createOutput(parseOut)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeParseOutput(f, prog, encoded); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// createOutput opens the --out file
var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func writeParseOutput(w io.Writer, prog *ast.Program, encoded []byte) error {
	if parseFormat == "pb" {
		_, err := w.Write(encoded)
		return err
	}
	return writeTree(w, prog, parseFormat)
}

// storeArtifact saves encoded unless the newest artifact for the same
// source already holds identical bytes
func storeArtifact(cmd *cobra.Command, name, source string, encoded []byte) error {
	ctx := context.Background()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	notes := cmd.ErrOrStderr()
	existing, err := store.FindBySource(ctx, artifact.HashSource(source))
	switch {
	case err == nil && existing.Name == name && string(existing.Encoded) == string(encoded):
		printNote(notes, "unchanged, artifact %s", existing.ID)
		return nil
	case err != nil && !minaerror.HasCode(err, minaerror.CodeNotFound):
		return err
	}

	a, err := store.Save(ctx, name, source, encoded)
	if err != nil {
		return err
	}
	printNote(notes, "stored artifact %s (%d nodes, %d bytes)", a.ID, a.NodeCount, a.Size)
	return nil
}

func printNote(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, noteStyle.Render(fmt.Sprintf(format, args...)))
}
