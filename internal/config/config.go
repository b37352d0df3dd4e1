// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Built-in defaults applied after all other sources.
const (
	DefaultDataset            = "default_cards"
	DefaultClientID           = "local-client"
	DefaultServerAddress      = "127.0.0.1:8787"
	DefaultBaseURL            = "http://127.0.0.1:8787"
	DefaultRequestTimeout     = 30 * time.Second
	DefaultFetchTimeout       = 15 * time.Second
	DefaultSyncInterval       = time.Hour
	DefaultRateLimitPerMinute = 120
)

// StructuredConfig is the merged configuration every cardsync binary
// starts from. Values arrive from four sources in priority order:
// environment variables, command-line flags, an optional JSON file,
// and built-in defaults.
//
// Two struct tags drive the environment mapping (caarlos0/env):
// envPrefix on nested groups and env on scalar fields; prefixes stack,
// so Storage.DB.DSN reads STORAGE_DB_DATABASE_URI.
type StructuredConfig struct {
	// App holds application-level settings such as the dataset name and
	// the client identity used in the sync ledger.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for all persistence backends: the
	// relational catalog database and the artifact file root.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout, and rate-limit settings for
	// the artifact HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds configuration for the outbound artifact fetcher used
	// by the sync client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the background job schedule of the client runtime.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath names an optional JSON config file, merged after env
	// and flags. Set through the CONFIG env var or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values shared by the server
// and client runtimes.
type App struct {
	// Dataset is the logical dataset this process works with.
	// Env: APP_DATASET
	Dataset string `env:"DATASET"`

	// ClientID identifies this client in the sync state ledger. One
	// ledger row exists per (ClientID, Dataset).
	// Env: APP_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage pairs the catalog database settings with the artifact file
// tree settings.
type Storage struct {
	// DB holds the catalog database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the artifact file tree settings.
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the catalog database backend.
type DB struct {
	// DSN is the connection string used to open the database. A
	// "postgres://" or "postgresql://" URI selects the pgx driver;
	// anything else is treated as a sqlite file path. Empty means no
	// SQL database: the client falls back to the in-memory store.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for the published artifact tree.
type Files struct {
	// DataRoot is the directory holding manifest.json, versions/,
	// patches/ and compacted/. Required by the server and the pipeline.
	// Env: STORAGE_FILES_DATA_ROOT
	DataRoot string `env:"DATA_ROOT"`
}

// Server holds network and rate-limit settings for the artifact server.
type Server struct {
	// HTTPAddress is where the artifact server listens, "host:port"
	// (e.g. "127.0.0.1:8787").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds one inbound request end to end; handlers
	// running past it are cancelled.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimitPerMinute caps requests per client IP. The token bucket
	// holds max(10, RateLimitPerMinute) tokens and refills at
	// max(0.2, RateLimitPerMinute/60) tokens per second.
	// Env: SERVER_RATE_LIMIT_PER_MINUTE
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE"`
}

// Adapter holds configuration for the outbound artifact fetcher.
type Adapter struct {
	// BaseURL is the artifact server base URL the client fetches from.
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds a single artifact fetch. A timeout is
	// treated like any other fetch failure.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers configures the background jobs a client process runs.
type Workers struct {
	// SyncInterval defines how often the background sync job runs.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig assembles the full configuration for one process.
// Environment variables are consulted first, then flags, then the
// optional JSON file; built-in defaults fill any field still unset.
// Errors from any source, and validation failures of the merged
// result, surface here.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
