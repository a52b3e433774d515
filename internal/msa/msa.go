// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package msa queries the sequence-alignment search backend.
package msa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/meshintelligence/drugpipe/internal/httputil"
	"github.com/meshintelligence/drugpipe/pkg/types"
)

// SearchPath is the fixed alignment-search endpoint on the backend.
const SearchPath = "/biology/colabfold/msa-search/predict"

// Request is the alignment-search wire format. Field names are the
// service's contract and must not change.
type Request struct {
	Sequence               string   `json:"sequence"`
	EValue                 float64  `json:"e_value"`
	Iterations             int      `json:"iterations"`
	SearchType             string   `json:"search_type"`
	OutputAlignmentFormats []string `json:"output_alignment_formats"`
	Databases              []string `json:"databases"`
}

// Response holds the alignment set. Alignments is kept as raw JSON so the
// folding request forwards it byte-for-byte; its internal layout (database
// to format to aligned-sequence blocks) belongs to the services.
type Response struct {
	Alignments json.RawMessage `json:"alignments"`
}

// aminoAlphabet covers the twenty standard residues plus the ambiguity
// codes B, J, O, U, X, Z.
const aminoAlphabet = "ACDEFGHIKLMNPQRSTVWYBJOUXZ"

// ValidateSequence checks that s is a non-empty protein sequence over the
// amino-acid alphabet. Lowercase letters are accepted.
func ValidateSequence(s string) error {
	if s == "" {
		return fmt.Errorf("sequence is empty")
	}
	for i, r := range strings.ToUpper(s) {
		if !strings.ContainsRune(aminoAlphabet, r) {
			return fmt.Errorf("sequence position %d: %q is not an amino-acid code", i, r)
		}
	}
	return nil
}

// Search submits the sequence to the alignment-search backend and returns
// the alignment set. There is no retry: transport errors and non-2xx
// responses propagate to the caller.
func Search(ctx context.Context, client *http.Client, cfg types.AlignmentConfig, sequence string) (*Response, error) {
	if err := ValidateSequence(sequence); err != nil {
		return nil, err
	}

	req := Request{
		Sequence:               sequence,
		EValue:                 cfg.EValue,
		Iterations:             cfg.Iterations,
		SearchType:             cfg.SearchType,
		OutputAlignmentFormats: cfg.OutputFormats,
		Databases:              cfg.Databases,
	}

	var resp Response
	err := httputil.PostJSON(ctx, client, cfg.BaseURL+SearchPath, req, &resp,
		httputil.RequestOptions{UserAgent: cfg.UserAgent, APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("alignment search: %w", err)
	}
	if len(resp.Alignments) == 0 {
		return nil, fmt.Errorf("alignment search: response has no alignments field")
	}
	return &resp, nil
}

// Databases returns the sorted database names present in the alignment set.
// Used for progress reporting only; the raw alignments are what flow downstream.
func (r *Response) Databases() ([]string, error) {
	var byDB map[string]json.RawMessage
	if err := json.Unmarshal(r.Alignments, &byDB); err != nil {
		return nil, fmt.Errorf("parsing alignment set: %w", err)
	}
	names := make([]string, 0, len(byDB))
	for name := range byDB {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
