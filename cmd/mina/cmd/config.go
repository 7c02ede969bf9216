package cmd

import (
	"github.com/spf13/cobra"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the configuration after defaults and flag overrides.
The output can be saved as a starting point for a config file:

  mina config > mina.toml
  mina config -f yaml > mina.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cfg.Encode(cmd.OutOrStdout(), configFormat)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVarP(&configFormat, "format", "f", "toml", "output format (toml or yaml)")
}
