// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from environment variables, mapping fields through
// the `env` and `envPrefix` tags declared on [StructuredConfig]. A value
// that cannot be converted to its field type (say, a malformed duration
// in SERVER_REQUEST_TIMEOUT) surfaces as a wrapped parse error.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
