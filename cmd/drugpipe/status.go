package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintelligence/drugpipe/internal/probe"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe the health endpoints of all four backends",
	Long: `Status issues a readiness check against each configured backend and prints
a per-service result. An unreachable or unhealthy backend is reported and
never prevents probing the others. With --live the liveness endpoint is
checked instead.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().Bool("live", false, "check the liveness endpoint instead of readiness")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	live, _ := cmd.Flags().GetBool("live")
	path := probe.ReadyPath
	if live {
		path = probe.LivePath
	}

	services := []probe.Service{
		{Name: "alignment", BaseURL: alignmentConfig().BaseURL},
		{Name: "fold", BaseURL: foldConfig().BaseURL},
		{Name: "generate", BaseURL: generateConfig().BaseURL},
		{Name: "dock", BaseURL: dockConfig().BaseURL},
	}

	client := newHTTPClient(serviceConfig("alignment").HTTPConfig)
	results := probe.CheckAll(cmd.Context(), client, services, path, os.Stdout)
	if !probe.AllOK(results) {
		return fmt.Errorf("one or more backends are not healthy")
	}
	return nil
}
