package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintelligence/drugpipe/internal/msa"
)

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Search sequence databases for alignments of a protein sequence",
	Long: `Align submits a protein sequence to the alignment-search backend and writes
the returned alignment set as raw JSON. The output feeds the fold command
unmodified.`,
	RunE: runAlign,
}

func init() {
	alignCmd.Flags().String("sequence", "", "protein sequence (amino-acid letters)")
	alignCmd.Flags().String("sequence-file", "", "file holding the sequence (plain or FASTA)")
	alignCmd.Flags().String("out", "", "write the alignment set JSON to this file (default: stdout)")
	alignCmd.Flags().Float64("e-value", 0, "similarity threshold (overrides config)")
	alignCmd.Flags().Int("iterations", 0, "search iterations (overrides config)")
	alignCmd.Flags().String("search-type", "", "search profile type (overrides config)")

	rootCmd.AddCommand(alignCmd)
}

func runAlign(cmd *cobra.Command, args []string) error {
	seqFlag, _ := cmd.Flags().GetString("sequence")
	seqFile, _ := cmd.Flags().GetString("sequence-file")
	sequence, err := readSequenceArg(seqFlag, seqFile)
	if err != nil {
		return err
	}

	cfg := alignmentConfig()
	if cmd.Flags().Changed("e-value") {
		cfg.EValue, _ = cmd.Flags().GetFloat64("e-value")
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations, _ = cmd.Flags().GetInt("iterations")
	}
	if cmd.Flags().Changed("search-type") {
		cfg.SearchType, _ = cmd.Flags().GetString("search-type")
	}

	client := newHTTPClient(cfg.HTTPConfig)
	resp, err := msa.Search(cmd.Context(), client, cfg, sequence)
	if err != nil {
		return err
	}

	if dbs, err := resp.Databases(); err == nil {
		fmt.Fprintf(os.Stderr, "alignments from %d database(s): %v\n", len(dbs), dbs)
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		_, err = os.Stdout.Write(resp.Alignments)
		return err
	}
	if err := os.WriteFile(out, resp.Alignments, 0o644); err != nil {
		return fmt.Errorf("writing alignment set: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	return nil
}
