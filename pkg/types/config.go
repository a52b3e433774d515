// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "drugpipe/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ServiceConfig identifies one inference backend. Each of the four
// backends is independently addressable; base addresses carry no path.
type ServiceConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the backend's base address (scheme://host:port, no trailing slash).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is an optional bearer token for hosted gateways; empty for
	// self-hosted backends.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// AlignmentConfig holds settings for the sequence-alignment search stage.
type AlignmentConfig struct {
	ServiceConfig `yaml:",inline"`

	// EValue is the similarity threshold for reported alignments (default 0.0001).
	EValue float64 `json:"e_value" yaml:"e_value"`

	// Iterations is the number of search iterations (default 1).
	Iterations int `json:"iterations" yaml:"iterations"`

	// SearchType selects the search profile (default "alphafold2").
	SearchType string `json:"search_type" yaml:"search_type"`

	// OutputFormats lists the alignment text formats to request.
	OutputFormats []string `json:"output_formats" yaml:"output_formats"`

	// Databases lists the target sequence databases.
	Databases []string `json:"databases" yaml:"databases"`
}

// FoldConfig holds settings for the structure-prediction stage.
type FoldConfig struct {
	ServiceConfig `yaml:",inline"`

	// UseTemplates enables template-based prediction.
	UseTemplates bool `json:"use_templates" yaml:"use_templates"`

	// RelaxedPrediction requests relaxed output coordinates.
	RelaxedPrediction bool `json:"relaxed_prediction" yaml:"relaxed_prediction"`
}

// GenerateConfig holds settings for the molecule-generation stage.
type GenerateConfig struct {
	ServiceConfig `yaml:",inline"`

	// NumMolecules is the number of candidates to request (default 5).
	NumMolecules int `json:"num_molecules" yaml:"num_molecules"`

	// Temperature is the sampling temperature (default 1.0).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// Noise is the sampling noise level (default 1.0).
	Noise float64 `json:"noise" yaml:"noise"`

	// StepSize is the sampling step size (default 1.0).
	StepSize float64 `json:"step_size" yaml:"step_size"`

	// Scoring names the optimization objective (default "QED").
	Scoring string `json:"scoring" yaml:"scoring"`

	// MaxRetries is the retry budget for rate-limited generation calls
	// (default 3). The other stages never retry.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// DockConfig holds settings for the protein-ligand docking stage.
type DockConfig struct {
	ServiceConfig `yaml:",inline"`

	// NumPoses is the number of poses requested per ligand (default 10).
	NumPoses int `json:"num_poses" yaml:"num_poses"`

	// TimeDivisions is the diffusion time-division count (default 20).
	TimeDivisions int `json:"time_divisions" yaml:"time_divisions"`

	// NumSteps is the number of diffusion steps (default 18).
	NumSteps int `json:"num_steps" yaml:"num_steps"`
}

// OutputConfig holds settings for run artifacts.
type OutputConfig struct {
	// OutputDir is the base directory for artifacts (contains structures/,
	// poses/, runs/).
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// StoreConfig holds settings for the run-history database.
type StoreConfig struct {
	// DBPath is the SQLite database path (default "output/runs/drugpipe.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// PipelineConfig groups all stage configurations for one pipeline run.
type PipelineConfig struct {
	Alignment AlignmentConfig `json:"alignment" yaml:"alignment"`
	Fold      FoldConfig      `json:"fold" yaml:"fold"`
	Generate  GenerateConfig  `json:"generate" yaml:"generate"`
	Dock      DockConfig      `json:"dock" yaml:"dock"`
	Output    OutputConfig    `json:"output" yaml:"output"`
	Store     StoreConfig     `json:"store" yaml:"store"`
}
