// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dock

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meshintelligence/drugpipe/pkg/types"
)

func testConfig(baseURL string) types.DockConfig {
	return types.DockConfig{
		ServiceConfig: types.ServiceConfig{BaseURL: baseURL},
		NumPoses:      10,
		TimeDivisions: 20,
		NumSteps:      18,
	}
}

func TestRun_WireFields(t *testing.T) {
	ligands := []string{"CCO", "CCN", "c1ccccc1"}

	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != GeneratePath {
			t.Errorf("request path = %q, want %q", r.URL.Path, GeneratePath)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		w.Write([]byte(`{
			"ligand": "CCO\nCCN\nc1ccccc1",
			"status": ["success", "success", "success"],
			"ligand_positions": [["p0a"], ["p1a"], ["p2a"]],
			"position_confidence": [[0.9], [0.8], [0.7]]
		}`))
	}))
	defer ts.Close()

	resp, err := Run(context.Background(), ts.Client(), testConfig(ts.URL), "ATOM 1", ligands)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	for _, field := range []string{"protein", "ligand", "ligand_file_type", "num_poses", "time_divisions", "num_steps"} {
		if _, ok := got[field]; !ok {
			t.Errorf("request missing field %q", field)
		}
	}
	if got["ligand"] != "CCO\nCCN\nc1ccccc1" {
		t.Errorf("ligand batch = %q, want newline-joined notations", got["ligand"])
	}
	if got["ligand_file_type"] != "txt" {
		t.Errorf("ligand_file_type = %v, want txt", got["ligand_file_type"])
	}
	if got["num_poses"] != float64(10) {
		t.Errorf("num_poses = %v, want 10", got["num_poses"])
	}

	// One status entry per submitted ligand.
	if len(resp.Status) != len(ligands) {
		t.Errorf("got %d status entries for %d ligands", len(resp.Status), len(ligands))
	}
}

func TestRun_StatusLengthMismatchIsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"ligand": "CCO\nCCN", "status": ["success"], "ligand_positions": [["p"]]}`))
	}))
	defer ts.Close()

	_, err := Run(context.Background(), ts.Client(), testConfig(ts.URL), "ATOM 1", []string{"CCO", "CCN"})
	if err == nil {
		t.Fatal("Run() accepted a truncated status array")
	}
	if !strings.Contains(err.Error(), "status") {
		t.Errorf("error does not name the status mismatch: %v", err)
	}
}

func TestRun_InputValidation(t *testing.T) {
	cfg := testConfig("http://unused")
	if _, err := Run(context.Background(), http.DefaultClient, cfg, "", []string{"CCO"}); err == nil {
		t.Error("Run() accepted an empty protein")
	}
	if _, err := Run(context.Background(), http.DefaultClient, cfg, "ATOM 1", nil); err == nil {
		t.Error("Run() accepted an empty ligand batch")
	}
}

// --- Partition ---

func TestPartitionPositional(t *testing.T) {
	// Failures interspersed: survivors must keep the pose list at their
	// original index, never a re-indexed one.
	submitted := []string{"CCO", "CCN", "CCC", "CCF"}
	resp := &Response{
		Status:          []string{"success", "failed", "success", "success"},
		LigandPositions: [][]string{{"pose0"}, {"pose1"}, {"pose2"}, {"pose3"}},
		PositionConfidence: [][]float64{
			{0.9}, {0.1}, {0.7}, {0.6},
		},
	}

	accepted, skipped := Partition(resp, submitted)

	if len(accepted) != 3 {
		t.Fatalf("got %d accepted, want 3", len(accepted))
	}
	wantIdx := []int{0, 2, 3}
	wantPose := []string{"pose0", "pose2", "pose3"}
	for i, a := range accepted {
		if a.Index != wantIdx[i] {
			t.Errorf("accepted[%d].Index = %d, want %d", i, a.Index, wantIdx[i])
		}
		if a.Poses[0] != wantPose[i] {
			t.Errorf("accepted[%d] pose = %q, want %q", i, a.Poses[0], wantPose[i])
		}
	}

	if len(skipped) != 1 {
		t.Fatalf("got %d skipped, want 1", len(skipped))
	}
	if skipped[0].Index != 1 || skipped[0].SMILES != "CCN" {
		t.Errorf("skipped = %+v, want index 1 / CCN", skipped[0])
	}
	if !strings.Contains(skipped[0].Reason, "docking failed") {
		t.Errorf("skip reason = %q, want docking-failed reason", skipped[0].Reason)
	}
}

func TestPartition_FailedStatusExcludedEvenIfParseable(t *testing.T) {
	// "CCO" parses fine; the failure flag alone must exclude it.
	resp := &Response{
		Status:          []string{"failed"},
		LigandPositions: [][]string{{"pose0"}},
	}
	accepted, skipped := Partition(resp, []string{"CCO"})
	if len(accepted) != 0 {
		t.Errorf("failed-status ligand reached the accepted set: %+v", accepted)
	}
	if len(skipped) != 1 {
		t.Fatalf("got %d skipped, want 1", len(skipped))
	}
}

func TestPartition_UnparsableSuccessExcludedWithReason(t *testing.T) {
	resp := &Response{
		Status:          []string{"success", "success"},
		LigandPositions: [][]string{{"pose0"}, {"pose1"}},
	}
	accepted, skipped := Partition(resp, []string{"C1CC((", "CCO"})

	if len(accepted) != 1 || accepted[0].SMILES != "CCO" {
		t.Fatalf("accepted = %+v, want only CCO", accepted)
	}
	// The survivor keeps its original index and pose list.
	if accepted[0].Index != 1 || accepted[0].Poses[0] != "pose1" {
		t.Errorf("accepted[0] = %+v, want index 1 with pose1", accepted[0])
	}
	if len(skipped) != 1 || skipped[0].Reason != "unparsable notation" {
		t.Errorf("skipped = %+v, want unparsable-notation skip at index 0", skipped)
	}
}

func TestPartition_MissingPoseArrayEntries(t *testing.T) {
	// A response may truncate pose arrays; accepted ligands past the end
	// get empty pose lists rather than a panic.
	resp := &Response{
		Status:          []string{"success", "success"},
		LigandPositions: [][]string{{"pose0"}},
	}
	accepted, _ := Partition(resp, []string{"CCO", "CCN"})
	if len(accepted) != 2 {
		t.Fatalf("got %d accepted, want 2", len(accepted))
	}
	if accepted[1].Poses != nil {
		t.Errorf("accepted[1].Poses = %v, want nil", accepted[1].Poses)
	}
}
