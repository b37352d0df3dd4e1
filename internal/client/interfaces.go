// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client is the minimal lifecycle contract a runnable client
// process satisfies.
type Client interface {
	// Run starts the client runtime and blocks until ctx is cancelled.
	Run(ctx context.Context) error
}
