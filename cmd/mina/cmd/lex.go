package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lexExpr string

var lexCmd = &cobra.Command{
	Use:   "lex [file|-]",
	Short: "Print the token stream",
	Long: `Tokenizes one input unit and prints one token per line as
KIND 'lexeme' line:col. Unrecognized characters are printed as ILLEGAL
tokens and reported on stderr.

Examples:
  mina lex prog.mina
  mina lex -e 'let x = 1;'
  echo '1 <= 2' | mina lex`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexExpr, "expr", "e", "", "tokenize this text instead of a file")
}

func runLex(cmd *cobra.Command, args []string) error {
	name, text, err := readSource(cmd, lexExpr, args)
	if err != nil {
		return err
	}

	fe, err := newFrontend()
	if err != nil {
		return err
	}

	tokens, err := fe.Tokenize(text)
	out := cmd.OutOrStdout()
	for _, tok := range tokens {
		fmt.Fprintln(out, tok)
	}
	if err != nil {
		return reportDiagnostics(cmd.ErrOrStderr(), name, err)
	}
	return nil
}
