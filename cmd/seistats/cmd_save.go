package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"seistats/internal/ingest"
	"seistats/internal/store"
)

var saveFlags struct {
	sourceFlags
	dbPath string
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Aggregate result files and persist per-group summaries",
	Long: `Run the full aggregation and write one summary row per parameter group to
the local SQLite store, so batches can be compared later with 'seistats history'.`,
	Args: cobra.NoArgs,
	RunE: runSave,
}

func init() {
	saveFlags.register(saveCmd)
	saveCmd.Flags().StringVar(&saveFlags.dbPath, "db", store.DefaultDBPath, "Store DB path")
}

func runSave(cmd *cobra.Command, _ []string) error {
	src, err := saveFlags.resolve(cmd)
	if err != nil {
		return err
	}

	c := ingest.NewCoordinator(src)
	st, err := c.Run()
	if err != nil {
		return err
	}
	if st == nil {
		fmt.Println("no result files parsed, nothing to save")
		return nil
	}

	s, err := store.Open(saveFlags.dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.SaveRun(st)
	if err != nil {
		return err
	}
	fmt.Printf("saved %d group summaries to %s\n", n, saveFlags.dbPath)
	return nil
}
