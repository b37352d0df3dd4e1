package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/cardsync/internal/client"
	"github.com/MKhiriev/cardsync/internal/config"
	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/models"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	dataset     string
	clientID    string
	baseURL     string
	databaseDSN string
	configPath  string
	format      string // "text" | "json"
}

// validFormats defines the allowed output formats.
var validFormats = []string{formatText, formatJSON}

// newRootCommand creates the root command for the sync client CLI.
func newRootCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "cardsync-client",
		Short: "Keep a local card price catalog in sync with a published dataset",
		Long: `cardsync-client maintains a local copy of a published card price catalog.

It talks to an artifact server, picks the cheapest catch-up path for the
local state (patch chain, compacted patch, or full snapshot), applies it
transactionally, and answers questions about what the local catalog
knows: sync status, apply history, applied versions, price trends and
individual records.

Configuration is read from environment variables and an optional JSON
config file; the global flags below override both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.format, validFormats)
			}
			return opts.export()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dataset, "dataset", "", "dataset name (env APP_DATASET)")
	cmd.PersistentFlags().StringVar(&opts.clientID, "client-id", "", "client identity in the sync ledger (env APP_CLIENT_ID)")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "artifact server base URL (env ADAPTER_BASE_URL)")
	cmd.PersistentFlags().StringVar(&opts.databaseDSN, "db", "", "catalog database DSN (env STORAGE_DB_DATABASE_URI)")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "JSON config file path")
	cmd.PersistentFlags().StringVar(&opts.format, "format", formatText, "output format (text|json)")

	cmd.AddCommand(newSyncCommand(opts))
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newHistoryCommand(opts))
	cmd.AddCommand(newVersionsCommand(opts))
	cmd.AddCommand(newTrendCommand(opts))
	cmd.AddCommand(newRecordsCommand(opts))
	cmd.AddCommand(newResetCommand(opts))
	cmd.AddCommand(newRunCommand(opts, buildInfo))
	cmd.AddCommand(newVersionCommand(buildInfo))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}

// export pushes explicitly set flags into the environment, which is the
// highest-priority source in the configuration merge. Empty flags leave
// the environment untouched.
func (o *rootOptions) export() error {
	overrides := map[string]string{
		"APP_DATASET":             o.dataset,
		"APP_CLIENT_ID":           o.clientID,
		"ADAPTER_BASE_URL":        o.baseURL,
		"STORAGE_DB_DATABASE_URI": o.databaseDSN,
		"CONFIG":                  o.configPath,
	}

	for name, value := range overrides {
		if value == "" {
			continue
		}
		if err := os.Setenv(name, value); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}

	return nil
}

// newClientApp builds the fully wired client application: logger, merged
// configuration, artifact fetcher, local catalog storage and services.
func newClientApp() (*client.App, *logger.Logger, error) {
	log := logger.NewClientLogger("cardsync-client")

	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("error getting configs: %w", err)
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	app, err := client.NewApp(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("init client app error: %w", err)
	}

	return app, log, nil
}
