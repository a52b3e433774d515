// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the configuration and data records shared across
// pipeline stages.
package types

import "time"

// Molecule is one generated candidate: a SMILES notation string and the
// scalar objective score the generator assigned it. The json tags match
// the generation service's wire fields.
type Molecule struct {
	SMILES string  `json:"smiles" yaml:"smiles"`
	Score  float64 `json:"score" yaml:"score"`
}

// MoleculeRecord is a candidate molecule annotated with its docking
// disposition for run archival.
type MoleculeRecord struct {
	SMILES string  `yaml:"smiles"`
	Score  float64 `yaml:"score"`

	// Accepted reports whether docking succeeded and the notation parsed.
	Accepted bool `yaml:"accepted"`

	// SkipReason is set when Accepted is false.
	SkipReason string `yaml:"skip_reason,omitempty"`
}

// PoseRecord is one docked pose of one ligand.
type PoseRecord struct {
	// LigandIndex is the ligand's position in the submitted batch. The
	// docking service returns parallel arrays, so this index is the only
	// correlation key.
	LigandIndex int `yaml:"ligand_index"`

	// Rank is the pose's position in the service's best-first ordering.
	Rank int `yaml:"rank"`

	// Confidence is the service's confidence for this pose, if reported.
	Confidence float64 `yaml:"confidence"`

	// Pose is the structural-coordinate text block.
	Pose string `yaml:"-"`
}

// RunRecord is the archived outcome of one pipeline run.
type RunRecord struct {
	ID            string           `yaml:"id"`
	Sequence      string           `yaml:"sequence"`
	Seed          string           `yaml:"seed"`
	StructurePath string           `yaml:"structure_path"`
	CreatedAt     time.Time        `yaml:"created_at"`
	Molecules     []MoleculeRecord `yaml:"molecules"`
	Poses         []PoseRecord     `yaml:"poses,omitempty"`
}

// RunSummary is a one-line view of an archived run.
type RunSummary struct {
	ID           string
	CreatedAt    time.Time
	SequenceLen  int
	NumMolecules int
	NumAccepted  int
}
