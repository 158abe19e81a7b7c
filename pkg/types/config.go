// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Defaults for the linking stages.
const (
	DefaultBatchSize = 50
	DefaultTimeout   = 30 * time.Second
	DefaultPace      = 1 * time.Second
	DefaultUserAgent = "graphavalanche/0.1"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// OpenAlexConfig holds settings for the OpenAlex works API client.
type OpenAlexConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the works endpoint (default https://api.openalex.org/works).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Email is sent as the mailto parameter for polite pool access.
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`

	// APIKey is sent as the api_key parameter when set.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// LinkConfig holds settings for the reference fetch and resolve stages.
type LinkConfig struct {
	// BatchSize is the maximum number of identifiers per outbound query
	// (default 50). Also sent as the page size.
	BatchSize int `json:"batch_size" yaml:"batch_size" mapstructure:"batch_size"`

	// Pace is the minimum spacing between consecutive batch queries
	// (default 1s). Zero disables pacing.
	Pace time.Duration `json:"pace" yaml:"pace" mapstructure:"pace"`
}

// OutputFormat selects the graph export format.
type OutputFormat string

const (
	OutputJSON      OutputFormat = "json"
	OutputYAML      OutputFormat = "yaml"
	OutputCytoscape OutputFormat = "cytoscape"
)

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	OpenAlex OpenAlexConfig `json:"openalex" yaml:"openalex" mapstructure:"openalex"`
	Link     LinkConfig     `json:"link" yaml:"link" mapstructure:"link"`
}
