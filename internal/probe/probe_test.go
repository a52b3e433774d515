// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package probe

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCheckAll_ContinuesPastFailures(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != ReadyPath {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	unhealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer unhealthy.Close()

	services := []Service{
		{Name: "msa", BaseURL: healthy.URL},
		{Name: "fold", BaseURL: "http://127.0.0.1:1"}, // unreachable
		{Name: "generate", BaseURL: unhealthy.URL},
		{Name: "dock", BaseURL: healthy.URL},
	}

	var buf bytes.Buffer
	results := CheckAll(context.Background(), http.DefaultClient, services, ReadyPath, &buf)

	if len(results) != 4 {
		t.Fatalf("CheckAll returned %d results, want 4", len(results))
	}

	wantOK := []bool{true, false, false, true}
	for i, r := range results {
		if r.OK != wantOK[i] {
			t.Errorf("results[%d] (%s): OK = %v, want %v (err: %v)", i, r.Service, r.OK, wantOK[i], r.Err)
		}
	}

	// The unreachable service must carry its transport error, not panic or abort.
	if results[1].Err == nil {
		t.Error("unreachable service has nil Err")
	}

	out := buf.String()
	if !strings.Contains(out, "not ready") {
		t.Errorf("output missing failure lines: %q", out)
	}
	if strings.Count(out, "\n") != 4 {
		t.Errorf("expected 4 status lines, got: %q", out)
	}
}

func TestCheckAll_PreservesInputOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	services := []Service{
		{Name: "msa", BaseURL: ts.URL},
		{Name: "fold", BaseURL: ts.URL},
		{Name: "generate", BaseURL: ts.URL},
	}

	var buf bytes.Buffer
	results := CheckAll(context.Background(), http.DefaultClient, services, LivePath, &buf)

	for i, want := range []string{"msa", "fold", "generate"} {
		if results[i].Service != want {
			t.Errorf("results[%d].Service = %q, want %q", i, results[i].Service, want)
		}
	}
}

func TestAllOK(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		want    bool
	}{
		{"empty", nil, false},
		{"all healthy", []Result{{OK: true}, {OK: true}}, true},
		{"one failing", []Result{{OK: true}, {OK: false}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllOK(tt.results); got != tt.want {
				t.Errorf("AllOK() = %v, want %v", got, tt.want)
			}
		})
	}
}
