package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"seistats/internal/format"
	"seistats/internal/params"
	"seistats/internal/results"
	"seistats/internal/seismic"
)

var inspectFlags sourceFlags

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show each result file's normalized parameters without parsing outputs",
	Long: `Enumerate result files and print the normalized parameter mapping of each,
without touching the referenced output directories. Useful for checking what
a batch contains before running the full aggregation.`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	inspectFlags.register(inspectCmd)
}

func runInspect(cmd *cobra.Command, _ []string) error {
	src, err := inspectFlags.resolve(cmd)
	if err != nil {
		return err
	}
	files, err := src.Enumerate()
	if err != nil {
		return err
	}

	tb := format.NewTable(inspectFlags.tableMode())
	tb.Header("File", "Type", "Parameters")

	shown := 0
	for _, f := range files {
		doc, ok, err := results.Load(f)
		if err != nil {
			return err
		}
		if !ok || !doc.Complete() {
			continue
		}
		et := params.TypeOf(doc.Params)
		normalized, err := params.Normalize(doc.Params, et)
		if err != nil {
			return fmt.Errorf("parse %s: %w", f.Path, err)
		}
		tb.Row(f.Path, string(et), seismic.GroupKey(normalized))
		shown++
	}

	if shown == 0 {
		fmt.Println("no result files parsed")
		return nil
	}
	printTable(tb.String())
	return nil
}
