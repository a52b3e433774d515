// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fold queries the structure-prediction backend and selects the
// structure handed to docking.
package fold

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/meshintelligence/drugpipe/internal/httputil"
	"github.com/meshintelligence/drugpipe/pkg/types"
)

// PredictPath is the fixed structure-prediction endpoint on the backend.
const PredictPath = "/biology/openfold/openfold2/predict-structure-from-msa"

// Request is the structure-prediction wire format. Alignments is the raw
// alignment set from the search stage, forwarded unmodified.
type Request struct {
	Sequence          string          `json:"sequence"`
	UseTemplates      bool            `json:"use_templates"`
	RelaxedPrediction bool            `json:"relaxed_prediction"`
	Alignments        json.RawMessage `json:"alignments"`
}

// RankedStructure is one predicted structure. Structure holds the
// structural-coordinate text block (PDB format).
type RankedStructure struct {
	Structure  string  `json:"structure"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Response lists predicted structures best-first.
type Response struct {
	StructuresInRankedOrder []RankedStructure `json:"structures_in_ranked_order"`
}

// Predict submits the sequence and its alignment set and returns the
// ranked structures. No retry; errors propagate.
func Predict(ctx context.Context, client *http.Client, cfg types.FoldConfig, sequence string, alignments json.RawMessage) (*Response, error) {
	req := Request{
		Sequence:          sequence,
		UseTemplates:      cfg.UseTemplates,
		RelaxedPrediction: cfg.RelaxedPrediction,
		Alignments:        alignments,
	}

	var resp Response
	err := httputil.PostJSON(ctx, client, cfg.BaseURL+PredictPath, req, &resp,
		httputil.RequestOptions{UserAgent: cfg.UserAgent, APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("structure prediction: %w", err)
	}
	return &resp, nil
}

// TopRanked returns the structure at rank 0. The pipeline always docks
// against the best-ranked structure; no other selection rule exists.
func TopRanked(resp *Response) (string, error) {
	if resp == nil || len(resp.StructuresInRankedOrder) == 0 {
		return "", fmt.Errorf("structure prediction returned no structures")
	}
	return resp.StructuresInRankedOrder[0].Structure, nil
}
