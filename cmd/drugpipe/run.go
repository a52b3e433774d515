package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintelligence/drugpipe/internal/pipeline"
	"github.com/meshintelligence/drugpipe/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the full pipeline: align, fold, generate, dock",
	Long: `Run executes the four stages strictly in sequence, threading each response
into the next request: alignment search feeds structure prediction, the
top-ranked structure and the generated candidate pool feed docking. The
first stage failure aborts the run. Artifacts (structure, accepted poses,
run summary) are written under the output directory; --save also archives
the run in the history database.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().String("sequence", "", "protein sequence (amino-acid letters)")
	runCmd.Flags().String("sequence-file", "", "file holding the sequence (plain or FASTA)")
	runCmd.Flags().String("seed", "", "seed fragment notation for molecule generation (required)")
	runCmd.Flags().Bool("save", false, "archive the run in the history database")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	seqFlag, _ := cmd.Flags().GetString("sequence")
	seqFile, _ := cmd.Flags().GetString("sequence-file")
	sequence, err := readSequenceArg(seqFlag, seqFile)
	if err != nil {
		return err
	}
	seed, _ := cmd.Flags().GetString("seed")
	if seed == "" {
		return fmt.Errorf("provide --seed")
	}

	cfg := pipelineConfig()
	client := newHTTPClient(cfg.Alignment.HTTPConfig)
	in := pipeline.Input{Sequence: sequence, Seed: seed}

	res, err := pipeline.Run(cmd.Context(), client, cfg, in, os.Stdout)
	if err != nil {
		return err
	}

	structPath, err := pipeline.WriteArtifacts(res, in, cfg.Output.OutputDir)
	if err != nil {
		return err
	}
	fmt.Printf("structure: %s\n", structPath)

	save, _ := cmd.Flags().GetBool("save")
	if save {
		s, err := store.Open(cfg.Store.DBPath)
		if err != nil {
			return err
		}
		defer s.Close()

		rec := res.Record(in)
		rec.StructurePath = structPath
		if err := s.SaveRun(cmd.Context(), rec); err != nil {
			return err
		}
		fmt.Printf("archived run %s\n", res.RunID)
	}
	return nil
}
