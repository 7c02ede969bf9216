package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/mina/foundation/mina"
)

var grammarFull bool

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Print the LALR table report",
	Long: `Builds the Mina parse table and prints its size and the
conflicts that precedence resolved. With --full every state is listed
with its kernel items, actions and gotos.`,
	Args: cobra.NoArgs,
	RunE: runGrammar,
}

func init() {
	rootCmd.AddCommand(grammarCmd)

	grammarCmd.Flags().BoolVar(&grammarFull, "full", false, "list productions and states")
}

func runGrammar(cmd *cobra.Command, args []string) error {
	table, err := mina.Table()
	if err != nil {
		return err
	}

	report := table.Report()
	out := cmd.OutOrStdout()

	if grammarFull {
		fmt.Fprint(out, report.String())
		return nil
	}

	fmt.Fprintln(out, titleStyle.Render("grammar "+report.Grammar))
	fmt.Fprintf(out, "  terminals:    %d\n", report.Terminals)
	fmt.Fprintf(out, "  nonterminals: %d\n", report.Nonterminals)
	fmt.Fprintf(out, "  productions:  %d\n", len(report.Productions))
	fmt.Fprintf(out, "  states:       %d\n", len(report.States))
	fmt.Fprintf(out, "  conflicts:    %d (unresolved: %d)\n", len(report.Conflicts), len(table.Unresolved()))
	for _, c := range report.Conflicts {
		fmt.Fprintf(out, "    %s\n", c)
	}
	return nil
}
