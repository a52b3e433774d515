// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package probe checks the health endpoints of the inference backends.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/meshintelligence/drugpipe/internal/httputil"
)

// Health endpoint paths shared by all four backends.
const (
	ReadyPath = "/v1/health/ready"
	LivePath  = "/v1/health/live"
)

// Service is one backend to probe.
type Service struct {
	Name    string
	BaseURL string
}

// Result is the outcome of probing one service.
type Result struct {
	Service string
	OK      bool
	Latency time.Duration
	Err     error
}

// CheckAll probes every service at the given health path and returns one
// Result per service, in input order. A failing or unreachable service is
// reported in its Result and never stops the remaining probes. Per-service
// status lines are written to w.
func CheckAll(ctx context.Context, client *http.Client, services []Service, path string, w io.Writer) []Result {
	results := make([]Result, 0, len(services))
	for _, svc := range services {
		start := time.Now()
		err := httputil.GetOK(ctx, client, svc.BaseURL+path, httputil.RequestOptions{})
		r := Result{
			Service: svc.Name,
			OK:      err == nil,
			Latency: time.Since(start),
			Err:     err,
		}
		if r.OK {
			fmt.Fprintf(w, "ok       %-12s %s (%v)\n", svc.Name, svc.BaseURL, r.Latency.Round(time.Millisecond))
		} else {
			fmt.Fprintf(w, "not ready %-12s %s: %v\n", svc.Name, svc.BaseURL, err)
		}
		results = append(results, r)
	}
	return results
}

// AllOK reports whether every probed service responded healthy.
func AllOK(results []Result) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return len(results) > 0
}
