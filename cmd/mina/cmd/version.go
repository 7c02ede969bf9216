package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/msto63/mina/pkg/core/version"
)

var (
	GitCommit = "development"
	BuildDate = "unknown"

	versionFormat string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Current()
		out := cmd.OutOrStdout()

		switch versionFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		case "yaml":
			return writeYAML(out, info)
		}

		fmt.Fprintf(out, "mina v%s\n", info.Version)
		fmt.Fprintf(out, "  AST Schema: %d\n", info.Schema)
		fmt.Fprintf(out, "  Git Commit: %s\n", GitCommit)
		fmt.Fprintf(out, "  Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", info.GoVersion)
		fmt.Fprintf(out, "  OS/Arch:    %s\n", info.Platform)

		names := make([]string, 0, len(info.Modules))
		for name := range info.Modules {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %-10s  %s\n", name+":", info.Modules[name])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "output format (text, json, yaml)")
}
