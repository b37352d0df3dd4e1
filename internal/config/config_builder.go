package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder collects configuration sources in priority order and
// folds them into one [StructuredConfig]. Source errors accumulate in
// err instead of aborting the chain, so build reports all of them at
// once.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{}
}

// build merges the collected sources, earliest one winning, and
// validates the result. The merged config is returned even when
// validation fails so callers can log what was actually assembled.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, src := range b.configs {
		if err := mergo.Merge(merged, src); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return merged, merged.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	fromEnv := new(StructuredConfig)
	if err := parseEnv(fromEnv); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, fromEnv)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	b.configs = append(b.configs, ParseFlags())
	return b
}

// withJSON loads the config file named by the sources collected so
// far. The last source to name a path wins; no path, no-op.
func (b *configBuilder) withJSON() *configBuilder {
	var path string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			path = cfg.JSONFilePath
		}
	}
	if path == "" {
		return b
	}

	fromFile, err := parseJSON(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, fromFile)
	return b
}

// withDefaults appends the built-in defaults as the lowest-priority
// source: mergo only fills fields every earlier source left at zero.
func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		App: App{
			Dataset:  DefaultDataset,
			ClientID: DefaultClientID,
		},
		Server: Server{
			HTTPAddress:        DefaultServerAddress,
			RequestTimeout:     DefaultRequestTimeout,
			RateLimitPerMinute: DefaultRateLimitPerMinute,
		},
		Adapter: Adapter{
			BaseURL:        DefaultBaseURL,
			RequestTimeout: DefaultFetchTimeout,
		},
		Workers: Workers{
			SyncInterval: DefaultSyncInterval,
		},
	})
	return b
}
