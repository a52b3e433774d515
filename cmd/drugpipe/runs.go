package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintelligence/drugpipe/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List archived pipeline runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := pipelineConfig().Store.DBPath
		if _, err := os.Stat(dbPath); err != nil {
			return fmt.Errorf("no run history at %s (archive runs with 'drugpipe run --save')", dbPath)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.ListRuns(cmd.Context())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No archived runs.")
			return nil
		}

		fmt.Printf("%-18s  %-20s  %-9s  %-10s  %s\n", "Run", "Created", "Residues", "Molecules", "Accepted")
		for _, r := range runs {
			fmt.Printf("%-18s  %-20s  %-9d  %-10d  %d\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.SequenceLen, r.NumMolecules, r.NumAccepted)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}
