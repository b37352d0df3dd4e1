// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants shared by every runtime.
//
// Role-specific requirements (the server's data root, the client's base
// URL) are enforced by [StructuredConfig.ValidateServer] and
// [ClientConfig.validate] so that one merged config can serve both.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.Dataset == "" || cfg.App.ClientID == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

// ValidateServer checks the settings the artifact server cannot run
// without: a listen address, a request timeout, and the artifact tree.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout == 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.Files.DataRoot == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.Dataset == "" || cfg.App.ClientID == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
