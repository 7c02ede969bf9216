package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/msto63/mina/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive shell",
	Long: `Starts an interactive shell. Every line is one input unit,
parsed or tokenized depending on the mode. Type :help for commands.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	fe, err := newFrontend()
	if err != nil {
		return err
	}

	return repl.Run(fe, repl.Config{
		Prompt:      cfg.Repl.Prompt,
		HistorySize: cfg.Repl.HistorySize,
	}, tea.WithAltScreen())
}
