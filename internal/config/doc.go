// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources merged in the following
// order (earlier sources win; defaults fill whatever remains unset):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the artifact server
// and [GetClientConfig] for the sync client runtime.
package config
