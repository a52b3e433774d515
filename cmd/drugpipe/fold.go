package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintelligence/drugpipe/internal/fold"
)

var foldCmd = &cobra.Command{
	Use:   "fold",
	Short: "Predict a protein structure from a sequence and its alignments",
	Long: `Fold submits a protein sequence and a previously obtained alignment set to
the structure-prediction backend. The backend returns candidate structures
best-first; the top-ranked structure is written as PDB text.`,
	RunE: runFold,
}

func init() {
	foldCmd.Flags().String("sequence", "", "protein sequence (amino-acid letters)")
	foldCmd.Flags().String("sequence-file", "", "file holding the sequence (plain or FASTA)")
	foldCmd.Flags().String("alignments-file", "", "alignment set JSON from the align command (required)")
	foldCmd.Flags().String("out", "", "write the structure to this file (default: stdout)")
	foldCmd.Flags().Bool("use-templates", false, "enable template-based prediction")
	foldCmd.Flags().Bool("relaxed", false, "request relaxed output coordinates")

	rootCmd.AddCommand(foldCmd)
}

func runFold(cmd *cobra.Command, args []string) error {
	seqFlag, _ := cmd.Flags().GetString("sequence")
	seqFile, _ := cmd.Flags().GetString("sequence-file")
	sequence, err := readSequenceArg(seqFlag, seqFile)
	if err != nil {
		return err
	}

	alignFile, _ := cmd.Flags().GetString("alignments-file")
	if alignFile == "" {
		return fmt.Errorf("provide --alignments-file (run 'drugpipe align' first)")
	}
	alignments, err := os.ReadFile(alignFile)
	if err != nil {
		return fmt.Errorf("reading alignment set: %w", err)
	}
	if !json.Valid(alignments) {
		return fmt.Errorf("alignment set %s is not valid JSON", alignFile)
	}

	cfg := foldConfig()
	if cmd.Flags().Changed("use-templates") {
		cfg.UseTemplates, _ = cmd.Flags().GetBool("use-templates")
	}
	if cmd.Flags().Changed("relaxed") {
		cfg.RelaxedPrediction, _ = cmd.Flags().GetBool("relaxed")
	}

	client := newHTTPClient(cfg.HTTPConfig)
	resp, err := fold.Predict(cmd.Context(), client, cfg, sequence, alignments)
	if err != nil {
		return err
	}

	structure, err := fold.TopRanked(resp)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%d candidate structure(s), keeping rank 0\n", len(resp.StructuresInRankedOrder))

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		fmt.Print(structure)
		return nil
	}
	if err := os.WriteFile(out, []byte(structure), 0o644); err != nil {
		return fmt.Errorf("writing structure: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	return nil
}
