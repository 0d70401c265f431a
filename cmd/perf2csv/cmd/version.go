package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the perf2csv CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "perf2csv version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
