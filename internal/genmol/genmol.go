// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package genmol queries the molecule-generation backend.
package genmol

import (
	"context"
	"fmt"
	"net/http"

	"github.com/meshintelligence/drugpipe/internal/httputil"
	"github.com/meshintelligence/drugpipe/pkg/types"
)

// GeneratePath is the fixed generation endpoint on the backend.
const GeneratePath = "/biology/nvidia/molmim/generate"

// Request is the molecule-generation wire format. SMILES is the seed
// fragment the sampler explores around.
type Request struct {
	SMILES       string  `json:"smiles"`
	NumMolecules int     `json:"num_molecules"`
	Temperature  float64 `json:"temperature"`
	Noise        float64 `json:"noise"`
	StepSize     float64 `json:"step_size"`
	Scoring      string  `json:"scoring"`
}

// Response holds the candidate pool. No ordering is assumed beyond what
// the service returns; the whole set goes to docking.
type Response struct {
	Molecules []types.Molecule `json:"molecules"`
}

// Generate submits the seed fragment and returns the candidate molecules.
// The hosted generation gateway rate-limits, so this stage alone retries
// on 429 per cfg.MaxRetries.
func Generate(ctx context.Context, client *http.Client, cfg types.GenerateConfig, seed string) (*Response, error) {
	if seed == "" {
		return nil, fmt.Errorf("seed fragment is empty")
	}
	if cfg.NumMolecules <= 0 {
		return nil, fmt.Errorf("num_molecules must be positive, got %d", cfg.NumMolecules)
	}

	req := Request{
		SMILES:       seed,
		NumMolecules: cfg.NumMolecules,
		Temperature:  cfg.Temperature,
		Noise:        cfg.Noise,
		StepSize:     cfg.StepSize,
		Scoring:      cfg.Scoring,
	}

	var resp Response
	err := httputil.PostJSON(ctx, client, cfg.BaseURL+GeneratePath, req, &resp,
		httputil.RequestOptions{UserAgent: cfg.UserAgent, APIKey: cfg.APIKey, MaxRetries: cfg.MaxRetries})
	if err != nil {
		return nil, fmt.Errorf("molecule generation: %w", err)
	}
	if len(resp.Molecules) == 0 {
		return nil, fmt.Errorf("molecule generation returned no candidates")
	}
	return &resp, nil
}

// Notations returns the candidate SMILES strings in response order. This
// order is the docking batch order and must be preserved.
func (r *Response) Notations() []string {
	out := make([]string, len(r.Molecules))
	for i, m := range r.Molecules {
		out[i] = m.SMILES
	}
	return out
}
