// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the four inference stages into one
// drug-discovery run: alignment search, structure prediction, molecule
// generation, docking.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/meshintelligence/drugpipe/internal/dock"
	"github.com/meshintelligence/drugpipe/internal/fold"
	"github.com/meshintelligence/drugpipe/internal/genmol"
	"github.com/meshintelligence/drugpipe/internal/msa"
	"github.com/meshintelligence/drugpipe/pkg/types"
)

// Artifact subdirectories under the output directory.
const (
	structuresDir = "structures"
	posesDir      = "poses"
	runsDir       = "runs"
)

// Input is what a run starts from: a protein sequence and a seed fragment.
type Input struct {
	Sequence string
	Seed     string
}

// Result holds everything one run produced.
type Result struct {
	RunID     string
	StartedAt time.Time

	// Structure is the rank-0 predicted structure (PDB text).
	Structure string

	// Molecules is the full candidate pool from generation, in response order.
	Molecules []types.Molecule

	// Accepted and Skipped partition the docked batch positionally.
	Accepted []dock.LigandResult
	Skipped  []dock.Skip
}

// Run executes the pipeline strictly in sequence. Each stage blocks until
// its response arrives and the next stage consumes its output; the first
// stage error aborts the remainder. Progress lines go to w.
func Run(ctx context.Context, client *http.Client, cfg types.PipelineConfig, in Input, w io.Writer) (*Result, error) {
	res := &Result{
		RunID:     time.Now().UTC().Format("20060102-150405"),
		StartedAt: time.Now().UTC(),
	}

	fmt.Fprintf(w, "searching alignments (%d residues)\n", len(in.Sequence))
	alignments, err := msa.Search(ctx, client, cfg.Alignment, in.Sequence)
	if err != nil {
		return nil, err
	}
	if dbs, err := alignments.Databases(); err == nil {
		fmt.Fprintf(w, "  alignments from %d database(s): %v\n", len(dbs), dbs)
	}

	fmt.Fprintln(w, "predicting structure")
	folded, err := fold.Predict(ctx, client, cfg.Fold, in.Sequence, alignments.Alignments)
	if err != nil {
		return nil, err
	}
	res.Structure, err = fold.TopRanked(folded)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "  %d candidate structure(s), docking against rank 0\n", len(folded.StructuresInRankedOrder))

	fmt.Fprintf(w, "generating %d molecule(s) around seed\n", cfg.Generate.NumMolecules)
	pool, err := genmol.Generate(ctx, client, cfg.Generate, in.Seed)
	if err != nil {
		return nil, err
	}
	res.Molecules = pool.Molecules
	fmt.Fprintf(w, "  %d candidate(s) returned\n", len(pool.Molecules))

	fmt.Fprintf(w, "docking %d ligand(s)\n", len(pool.Molecules))
	docked, err := dock.Run(ctx, client, cfg.Dock, res.Structure, pool.Notations())
	if err != nil {
		return nil, err
	}
	res.Accepted, res.Skipped = dock.Partition(docked, pool.Notations())

	for _, s := range res.Skipped {
		fmt.Fprintf(w, "  warning: ligand %d skipped: %s\n", s.Index, s.Reason)
	}
	fmt.Fprintf(w, "done: %d ligand(s) accepted, %d skipped\n", len(res.Accepted), len(res.Skipped))

	return res, nil
}

// Record converts the result into the archival record form.
func (r *Result) Record(in Input) types.RunRecord {
	rec := types.RunRecord{
		ID:        r.RunID,
		Sequence:  in.Sequence,
		Seed:      in.Seed,
		CreatedAt: r.StartedAt,
	}

	skipByIndex := make(map[int]string, len(r.Skipped))
	for _, s := range r.Skipped {
		skipByIndex[s.Index] = s.Reason
	}
	acceptedByIndex := make(map[int]bool, len(r.Accepted))
	for _, a := range r.Accepted {
		acceptedByIndex[a.Index] = true
	}

	for i, m := range r.Molecules {
		rec.Molecules = append(rec.Molecules, types.MoleculeRecord{
			SMILES:     m.SMILES,
			Score:      m.Score,
			Accepted:   acceptedByIndex[i],
			SkipReason: skipByIndex[i],
		})
	}

	for _, a := range r.Accepted {
		for rank, pose := range a.Poses {
			pr := types.PoseRecord{LigandIndex: a.Index, Rank: rank, Pose: pose}
			if rank < len(a.Confidence) {
				pr.Confidence = a.Confidence[rank]
			}
			rec.Poses = append(rec.Poses, pr)
		}
	}
	return rec
}

// WriteArtifacts writes the run's structure, accepted poses, and a YAML
// summary under outDir. It returns the structure file path.
func WriteArtifacts(res *Result, in Input, outDir string) (string, error) {
	for _, dir := range []string{
		filepath.Join(outDir, structuresDir),
		filepath.Join(outDir, posesDir, res.RunID),
		filepath.Join(outDir, runsDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	structPath := filepath.Join(outDir, structuresDir, res.RunID+".pdb")
	if err := os.WriteFile(structPath, []byte(res.Structure), 0o644); err != nil {
		return "", fmt.Errorf("writing structure: %w", err)
	}

	for _, a := range res.Accepted {
		for rank, pose := range a.Poses {
			name := fmt.Sprintf("ligand%02d_pose%02d.pdb", a.Index, rank)
			path := filepath.Join(outDir, posesDir, res.RunID, name)
			if err := os.WriteFile(path, []byte(pose), 0o644); err != nil {
				return "", fmt.Errorf("writing pose %s: %w", name, err)
			}
		}
	}

	rec := res.Record(in)
	rec.StructurePath = structPath
	data, err := yaml.Marshal(&rec)
	if err != nil {
		return "", fmt.Errorf("encoding run record: %w", err)
	}
	runPath := filepath.Join(outDir, runsDir, res.RunID+".yaml")
	if err := os.WriteFile(runPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing run record: %w", err)
	}

	return structPath, nil
}
