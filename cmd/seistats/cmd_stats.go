package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"seistats/internal/ingest"
	"seistats/internal/report"
)

var statsFlags sourceFlags

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate result files and print reachability and latency tables",
	Long: `Parse experiment result files, normalize their parameters and print per-group
reachability and latency statistics.

Usage:
  seistats stats --dirs results/2026-03       # every result file in a directory
  seistats stats --files a.json,b.json        # explicit files, in order
  seistats stats                              # defaults to ./results.json

Files ending in .progress and files that are not result documents are skipped.
All files of one invocation must come from the same experiment type.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsFlags.register(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	src, err := statsFlags.resolve(cmd)
	if err != nil {
		return err
	}

	c := ingest.NewCoordinator(src)
	st, err := c.Run()
	if err != nil {
		return err
	}
	if st == nil {
		fmt.Println("no result files parsed")
		return nil
	}

	mode := statsFlags.tableMode()
	printTable(report.Reachability(st, mode))

	lat, err := report.Latency(st, mode)
	if err != nil {
		return err
	}
	printTable(lat)
	return nil
}
