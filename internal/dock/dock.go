// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dock queries the protein-ligand docking backend and partitions
// its per-ligand results.
package dock

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/meshintelligence/drugpipe/internal/httputil"
	"github.com/meshintelligence/drugpipe/pkg/types"
)

// GeneratePath is the fixed docking endpoint on the backend.
const GeneratePath = "/molecular-docking/diffdock/generate"

// ligandFileType tells the service the ligand batch is newline-delimited
// SMILES text.
const ligandFileType = "txt"

// statusSuccess is the per-ligand success flag value on the wire.
const statusSuccess = "success"

// Request is the docking wire format. Protein is the folded structure's
// coordinate text block; Ligand is the newline-joined candidate batch.
type Request struct {
	Protein        string `json:"protein"`
	Ligand         string `json:"ligand"`
	LigandFileType string `json:"ligand_file_type"`
	NumPoses       int    `json:"num_poses"`
	TimeDivisions  int    `json:"time_divisions"`
	NumSteps       int    `json:"num_steps"`
}

// Response carries parallel arrays: Status[i] and LigandPositions[i] belong
// to the i-th submitted ligand. There is no key other than position.
type Response struct {
	Ligand             string      `json:"ligand"`
	Status             []string    `json:"status"`
	LigandPositions    [][]string  `json:"ligand_positions"`
	PositionConfidence [][]float64 `json:"position_confidence"`
}

// LigandResult is one accepted ligand with its ranked poses. Index is the
// ligand's position in the submitted batch.
type LigandResult struct {
	Index      int
	SMILES     string
	Poses      []string
	Confidence []float64
}

// Skip records a ligand excluded from the accepted set and why.
type Skip struct {
	Index  int
	SMILES string
	Reason string
}

// Run docks the ligand batch against the protein structure. The batch is
// joined with newlines; the service's status array must come back with one
// entry per submitted ligand or the response is rejected.
func Run(ctx context.Context, client *http.Client, cfg types.DockConfig, protein string, ligands []string) (*Response, error) {
	if protein == "" {
		return nil, fmt.Errorf("protein structure is empty")
	}
	if len(ligands) == 0 {
		return nil, fmt.Errorf("ligand batch is empty")
	}

	req := Request{
		Protein:        protein,
		Ligand:         strings.Join(ligands, "\n"),
		LigandFileType: ligandFileType,
		NumPoses:       cfg.NumPoses,
		TimeDivisions:  cfg.TimeDivisions,
		NumSteps:       cfg.NumSteps,
	}

	var resp Response
	err := httputil.PostJSON(ctx, client, cfg.BaseURL+GeneratePath, req, &resp,
		httputil.RequestOptions{UserAgent: cfg.UserAgent, APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("docking: %w", err)
	}
	if len(resp.Status) != len(ligands) {
		return nil, fmt.Errorf("docking: got %d status entries for %d ligands", len(resp.Status), len(ligands))
	}
	return &resp, nil
}

// Partition splits the docking response into accepted ligands and skips.
// Zipping is strictly positional: the i-th submitted ligand owns Status[i]
// and LigandPositions[i], and surviving ligands keep their original index.
// A ligand is skipped when the service flagged it failed, or when its
// notation does not parse as a molecule even though the service reported
// success.
func Partition(resp *Response, submitted []string) ([]LigandResult, []Skip) {
	var accepted []LigandResult
	var skipped []Skip

	for i, smi := range submitted {
		if i >= len(resp.Status) {
			skipped = append(skipped, Skip{Index: i, SMILES: smi, Reason: "no status returned"})
			continue
		}
		if resp.Status[i] != statusSuccess {
			skipped = append(skipped, Skip{Index: i, SMILES: smi, Reason: "docking failed: " + resp.Status[i]})
			continue
		}
		if !ValidSMILES(smi) {
			skipped = append(skipped, Skip{Index: i, SMILES: smi, Reason: "unparsable notation"})
			continue
		}

		r := LigandResult{Index: i, SMILES: smi}
		if i < len(resp.LigandPositions) {
			r.Poses = resp.LigandPositions[i]
		}
		if i < len(resp.PositionConfidence) {
			r.Confidence = resp.PositionConfidence[i]
		}
		accepted = append(accepted, r)
	}
	return accepted, skipped
}
