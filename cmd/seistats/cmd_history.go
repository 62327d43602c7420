package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"seistats/internal/format"
	"seistats/internal/store"
)

var historyFlags struct {
	dbPath   string
	markdown bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously saved group summaries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyFlags.dbPath, "db", store.DefaultDBPath, "Store DB path")
	f.BoolVar(&historyFlags.markdown, "markdown", false, "Render tables as Markdown")
}

func runHistory(_ *cobra.Command, _ []string) error {
	s, err := store.Open(historyFlags.dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	summaries, err := s.List()
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("no saved summaries")
		return nil
	}

	mode := format.ASCII
	if historyFlags.markdown {
		mode = format.Markdown
	}
	tb := format.NewTable(mode)
	tb.Header("Saved", "Parameters", "Hosts", "Reached", "Rate", "Events", "Mean", "P95")
	for _, sum := range summaries {
		tb.Row(sum.CreatedAt, sum.GroupKey,
			sum.Hosts, sum.Reached, format.Percent(sum.Rate),
			sum.LatCount, format.Float(sum.LatMean), format.Float(sum.LatP95))
	}
	tb.AlignRight(3, 4, 5, 6, 7, 8)
	printTable(tb.String())
	return nil
}
