package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	artifactsLimit  int
	artifactsFormat string
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Manage stored syntax trees",
	Long: `Lists, shows, decodes and removes syntax trees saved with
'mina parse --store'.

Examples:
  mina artifacts                  # newest artifacts
  mina artifacts show <id>
  mina artifacts decode <id> -f tree
  mina artifacts rm <id>
  mina artifacts stats`,
	Args: cobra.NoArgs,
	RunE: runArtifactsList,
}

var artifactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored artifacts, newest first",
	Args:  cobra.NoArgs,
	RunE:  runArtifactsList,
}

var artifactsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show artifact metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runArtifactsShow,
}

var artifactsDecodeCmd = &cobra.Command{
	Use:   "decode <id>",
	Short: "Decode and print a stored tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runArtifactsDecode,
}

var artifactsRmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete"},
	Short:   "Remove artifacts",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runArtifactsRm,
}

var artifactsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	Args:  cobra.NoArgs,
	RunE:  runArtifactsStats,
}

func init() {
	rootCmd.AddCommand(artifactsCmd)
	artifactsCmd.AddCommand(artifactsListCmd, artifactsShowCmd, artifactsDecodeCmd, artifactsRmCmd, artifactsStatsCmd)

	artifactsCmd.PersistentFlags().IntVarP(&artifactsLimit, "limit", "n", 20, "maximum number of artifacts to list (0 = all)")
	artifactsDecodeCmd.Flags().StringVarP(&artifactsFormat, "format", "f", "text", "output format (text, tree, json, yaml)")
}

func runArtifactsList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.List(context.Background(), artifactsLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, noteStyle.Render("No artifacts stored."))
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-20s  %6s  %6s  %7s  %s\n", "ID", "NAME", "SCHEMA", "NODES", "BYTES", "CREATED")
	for _, a := range list {
		fmt.Fprintf(out, "%-36s  %-20s  %6d  %6d  %7d  %s\n",
			a.ID, truncate(a.Name, 20), a.SchemaVersion, a.NodeCount, a.Size, a.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runArtifactsShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	a, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	return writeYAML(cmd.OutOrStdout(), a)
}

func runArtifactsDecode(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	a, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	unit, err := a.Unit()
	if err != nil {
		return err
	}
	return writeTree(cmd.OutOrStdout(), unit.Root, artifactsFormat)
}

func runArtifactsRm(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, id := range args {
		if err := store.Delete(context.Background(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
	}
	return nil
}

func runArtifactsStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(context.Background())
	if err != nil {
		return err
	}
	return writeYAML(cmd.OutOrStdout(), stats)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
