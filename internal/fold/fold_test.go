// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fold

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meshintelligence/drugpipe/pkg/types"
)

func testConfig(baseURL string) types.FoldConfig {
	return types.FoldConfig{
		ServiceConfig: types.ServiceConfig{BaseURL: baseURL},
	}
}

func TestPredict_WireFields(t *testing.T) {
	alignments := json.RawMessage(`{"uniref90":{"a3m":">q\nACDEF"}}`)

	var got map[string]json.RawMessage
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PredictPath {
			t.Errorf("request path = %q, want %q", r.URL.Path, PredictPath)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		w.Write([]byte(`{"structures_in_ranked_order": [{"structure": "ATOM 1", "confidence": 0.93}]}`))
	}))
	defer ts.Close()

	resp, err := Predict(context.Background(), ts.Client(), testConfig(ts.URL), "ACDEF", alignments)
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}

	for _, field := range []string{"sequence", "use_templates", "relaxed_prediction", "alignments"} {
		if _, ok := got[field]; !ok {
			t.Errorf("request missing field %q", field)
		}
	}
	// The alignment set must pass through byte-for-byte.
	if string(got["alignments"]) != string(alignments) {
		t.Errorf("alignments forwarded as %s, want %s", got["alignments"], alignments)
	}
	if len(resp.StructuresInRankedOrder) != 1 {
		t.Fatalf("got %d structures, want 1", len(resp.StructuresInRankedOrder))
	}
	if resp.StructuresInRankedOrder[0].Confidence != 0.93 {
		t.Errorf("confidence = %v, want 0.93", resp.StructuresInRankedOrder[0].Confidence)
	}
}

func TestPredict_NonSuccessPropagates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	_, err := Predict(context.Background(), ts.Client(), testConfig(ts.URL), "ACDEF", json.RawMessage(`{}`))
	if err == nil {
		t.Fatal("Predict() succeeded on HTTP 400")
	}
}

func TestTopRanked(t *testing.T) {
	tests := []struct {
		name    string
		resp    *Response
		want    string
		wantErr bool
	}{
		{
			name: "single candidate",
			resp: &Response{StructuresInRankedOrder: []RankedStructure{{Structure: "ATOM A"}}},
			want: "ATOM A",
		},
		{
			name: "always index 0 of many",
			resp: &Response{StructuresInRankedOrder: []RankedStructure{
				{Structure: "ATOM best", Confidence: 0.9},
				{Structure: "ATOM second", Confidence: 0.95}, // higher confidence must not win
				{Structure: "ATOM third"},
			}},
			want: "ATOM best",
		},
		{name: "empty list", resp: &Response{}, wantErr: true},
		{name: "nil response", resp: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TopRanked(tt.resp)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TopRanked() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("TopRanked() = %q, want %q", got, tt.want)
			}
		})
	}
}
