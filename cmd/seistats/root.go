// seistats aggregates smart-campus seismic-alert experiment results: it
// discovers result files, normalizes their parameter records and reports
// reachability and latency statistics per parameter group.
//
// Usage:
//
//	seistats stats --dirs results/                # scan directories
//	seistats stats --files a.json,b.json          # explicit files
//	seistats inspect --dirs results/              # parameters only
//	seistats save --dirs results/ [--db <path>]   # persist summaries
//	seistats history [--db <path>]                # show saved summaries
//	seistats serve                                # MCP server over stdio
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "seistats",
	Short: "Statistics for smart-campus seismic-alert experiments",
	Long: "Seistats parses experiment result files, groups them by normalized\n" +
		"parameters and reports alert reachability and propagation latency.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
