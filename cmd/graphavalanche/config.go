// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/graphavalanche/internal/openalex"
	"github.com/pdiddy/graphavalanche/pkg/types"
)

// Configuration keys. Each may be set in the config file, as an environment
// variable (GRAPHAVALANCHE_ prefix, dots as underscores), or by flag.
const (
	keyBaseURL   = "openalex.base_url"
	keyEmail     = "openalex.email"
	keyAPIKey    = "openalex.api_key"
	keyBatchSize = "link.batch_size"
	keyTimeout   = "link.timeout"
	keyPace      = "link.pace"
	keyUserAgent = "user_agent"
)

func setConfigDefaults() {
	viper.SetDefault(keyBaseURL, openalex.DefaultBaseURL)
	viper.SetDefault(keyBatchSize, types.DefaultBatchSize)
	viper.SetDefault(keyTimeout, types.DefaultTimeout)
	viper.SetDefault(keyPace, types.DefaultPace)
	viper.SetDefault(keyUserAgent, types.DefaultUserAgent)
}

// pipelineConfig assembles the run configuration from viper, then fills
// unset credentials from the secrets directory.
func pipelineConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		OpenAlex: types.OpenAlexConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration(keyTimeout),
				UserAgent: viper.GetString(keyUserAgent),
			},
			BaseURL: viper.GetString(keyBaseURL),
			Email:   viper.GetString(keyEmail),
			APIKey:  viper.GetString(keyAPIKey),
		},
		Link: types.LinkConfig{
			BatchSize: viper.GetInt(keyBatchSize),
			Pace:      viper.GetDuration(keyPace),
		},
	}
	loadedSecrets.ApplyOpenAlex(&cfg.OpenAlex)
	return cfg
}
