package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshintelligence/drugpipe/internal/dock"
)

var dockCmd = &cobra.Command{
	Use:   "dock",
	Short: "Dock a ligand batch against a folded structure",
	Long: `Dock submits a protein structure and a batch of candidate ligand notations
to the docking backend. Ligands the backend flags as failed, and ligands
whose notation does not parse, are skipped with a reported reason; accepted
ligands keep their position in the submitted batch. Poses are written one
file per ligand and rank.`,
	RunE: runDock,
}

func init() {
	dockCmd.Flags().String("protein-file", "", "folded structure PDB file (required)")
	dockCmd.Flags().String("ligands-file", "", "newline-delimited ligand notations (required)")
	dockCmd.Flags().String("out-dir", "", "directory for pose files (default: no pose files)")
	dockCmd.Flags().Int("num-poses", 0, "poses per ligand (overrides config)")

	rootCmd.AddCommand(dockCmd)
}

func runDock(cmd *cobra.Command, args []string) error {
	proteinFile, _ := cmd.Flags().GetString("protein-file")
	ligandsFile, _ := cmd.Flags().GetString("ligands-file")
	if proteinFile == "" || ligandsFile == "" {
		return fmt.Errorf("provide --protein-file and --ligands-file")
	}

	proteinData, err := os.ReadFile(proteinFile)
	if err != nil {
		return fmt.Errorf("reading protein structure: %w", err)
	}
	ligandData, err := os.ReadFile(ligandsFile)
	if err != nil {
		return fmt.Errorf("reading ligand batch: %w", err)
	}

	var ligands []string
	for _, line := range strings.Split(string(ligandData), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			ligands = append(ligands, line)
		}
	}

	cfg := dockConfig()
	if cmd.Flags().Changed("num-poses") {
		cfg.NumPoses, _ = cmd.Flags().GetInt("num-poses")
	}

	client := newHTTPClient(cfg.HTTPConfig)
	resp, err := dock.Run(cmd.Context(), client, cfg, string(proteinData), ligands)
	if err != nil {
		return err
	}

	accepted, skipped := dock.Partition(resp, ligands)
	for _, s := range skipped {
		fmt.Fprintf(os.Stderr, "warning: ligand %d skipped: %s\n", s.Index, s.Reason)
	}

	outDir, _ := cmd.Flags().GetString("out-dir")
	for _, a := range accepted {
		best := "-"
		if len(a.Confidence) > 0 {
			best = fmt.Sprintf("%.3f", a.Confidence[0])
		}
		fmt.Printf("ligand %d: %d pose(s), best confidence %s  %s\n", a.Index, len(a.Poses), best, a.SMILES)

		if outDir == "" {
			continue
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", outDir, err)
		}
		for rank, pose := range a.Poses {
			name := fmt.Sprintf("ligand%02d_pose%02d.pdb", a.Index, rank)
			if err := os.WriteFile(filepath.Join(outDir, name), []byte(pose), 0o644); err != nil {
				return fmt.Errorf("writing pose %s: %w", name, err)
			}
		}
	}

	fmt.Printf("\n%d ligand(s) accepted, %d skipped\n", len(accepted), len(skipped))
	return nil
}
