// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/meshintelligence/drugpipe/internal/secrets"
	"github.com/meshintelligence/drugpipe/pkg/types"
)

const defaultUserAgent = "drugpipe/0.1"

// defaultTimeout is generous: a folding request against a cold backend can
// take several minutes.
const defaultTimeout = 10 * time.Minute

func setConfigDefaults() {
	viper.SetDefault("http.timeout", defaultTimeout)

	viper.SetDefault("alignment.base_url", "http://localhost:8081")
	viper.SetDefault("fold.base_url", "http://localhost:8082")
	viper.SetDefault("generate.base_url", "http://localhost:8083")
	viper.SetDefault("dock.base_url", "http://localhost:8084")

	viper.SetDefault("alignment.e_value", 0.0001)
	viper.SetDefault("alignment.iterations", 1)
	viper.SetDefault("alignment.search_type", "alphafold2")
	viper.SetDefault("alignment.output_formats", []string{"a3m", "fasta"})
	viper.SetDefault("alignment.databases", []string{"uniref90", "small_bfd", "mgnify"})

	viper.SetDefault("fold.use_templates", false)
	viper.SetDefault("fold.relaxed_prediction", false)

	viper.SetDefault("generate.num_molecules", 5)
	viper.SetDefault("generate.temperature", 1.0)
	viper.SetDefault("generate.noise", 1.0)
	viper.SetDefault("generate.step_size", 1.0)
	viper.SetDefault("generate.scoring", "QED")
	viper.SetDefault("generate.max_retries", 3)

	viper.SetDefault("dock.num_poses", 10)
	viper.SetDefault("dock.time_divisions", 20)
	viper.SetDefault("dock.num_steps", 18)

	viper.SetDefault("output.dir", "output")
	viper.SetDefault("store.db_path", filepath.Join("output", "runs", "drugpipe.db"))
}

// serviceConfig resolves the base address and HTTP settings for one stage.
func serviceConfig(stage string) types.ServiceConfig {
	return types.ServiceConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: defaultUserAgent,
		},
		BaseURL: strings.TrimRight(viper.GetString(stage+".base_url"), "/"),
		APIKey:  secrets.APIKey(loadedSecrets),
	}
}

func alignmentConfig() types.AlignmentConfig {
	return types.AlignmentConfig{
		ServiceConfig: serviceConfig("alignment"),
		EValue:        viper.GetFloat64("alignment.e_value"),
		Iterations:    viper.GetInt("alignment.iterations"),
		SearchType:    viper.GetString("alignment.search_type"),
		OutputFormats: viper.GetStringSlice("alignment.output_formats"),
		Databases:     viper.GetStringSlice("alignment.databases"),
	}
}

func foldConfig() types.FoldConfig {
	return types.FoldConfig{
		ServiceConfig:     serviceConfig("fold"),
		UseTemplates:      viper.GetBool("fold.use_templates"),
		RelaxedPrediction: viper.GetBool("fold.relaxed_prediction"),
	}
}

func generateConfig() types.GenerateConfig {
	return types.GenerateConfig{
		ServiceConfig: serviceConfig("generate"),
		NumMolecules:  viper.GetInt("generate.num_molecules"),
		Temperature:   viper.GetFloat64("generate.temperature"),
		Noise:         viper.GetFloat64("generate.noise"),
		StepSize:      viper.GetFloat64("generate.step_size"),
		Scoring:       viper.GetString("generate.scoring"),
		MaxRetries:    viper.GetInt("generate.max_retries"),
	}
}

func dockConfig() types.DockConfig {
	return types.DockConfig{
		ServiceConfig: serviceConfig("dock"),
		NumPoses:      viper.GetInt("dock.num_poses"),
		TimeDivisions: viper.GetInt("dock.time_divisions"),
		NumSteps:      viper.GetInt("dock.num_steps"),
	}
}

func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Alignment: alignmentConfig(),
		Fold:      foldConfig(),
		Generate:  generateConfig(),
		Dock:      dockConfig(),
		Output:    types.OutputConfig{OutputDir: viper.GetString("output.dir")},
		Store:     types.StoreConfig{DBPath: viper.GetString("store.db_path")},
	}
}

func newHTTPClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// readSequenceArg resolves a protein sequence from --sequence or
// --sequence-file, stripping FASTA headers and whitespace from file input.
func readSequenceArg(sequence, file string) (string, error) {
	if sequence != "" {
		return sequence, nil
	}
	if file == "" {
		return "", fmt.Errorf("provide --sequence or --sequence-file")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading sequence file: %w", err)
	}

	var b strings.Builder
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ">") {
			continue
		}
		b.WriteString(line)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("sequence file %s contains no sequence", file)
	}
	return b.String(), nil
}
