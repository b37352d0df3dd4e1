package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/cardsync/internal/config"
	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/pipeline"
	"github.com/MKhiriev/cardsync/internal/store"
	"github.com/MKhiriev/cardsync/models"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	dataset string
}

// newRootCommand creates the root command for the publisher pipeline CLI.
func newRootCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "cardsync-pipeline",
		Short: "Publish card price catalog artifacts",
		Long: `cardsync-pipeline builds the artifact tree cardsync-server serves.

It normalizes raw card dumps into versioned snapshots, derives
incremental and compacted patches, maintains the versions index and
publishes the manifest last, so a reader never sees the manifest
reference artifacts that do not exist yet.

Each command prints a one-line JSON summary on stdout; logs go to
cardsync.log next to the executable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.dataset, "dataset", config.DefaultDataset, "dataset name to publish under")

	cmd.AddCommand(newBuildDailyCommand(opts))
	cmd.AddCommand(newIngestCommand(opts))
	cmd.AddCommand(newDiffCommand(opts))
	cmd.AddCommand(newCompactCommand(opts))
	cmd.AddCommand(newManifestCommand(opts))
	cmd.AddCommand(newVersionCommand(buildInfo))

	return cmd
}

// newPipeline wires a publisher pipeline over the artifact tree rooted
// at dataRoot.
func (o *rootOptions) newPipeline(dataRoot string) *pipeline.Pipeline {
	log := logger.NewClientLogger("cardsync-pipeline")
	artifacts := store.NewArtifactFileStore(dataRoot, log)

	return pipeline.NewPipeline(artifacts, o.dataset, log)
}

// printResult emits one compact JSON line describing what a command
// did, keeping stdout machine-readable for cron wrappers.
func printResult(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	fmt.Println(string(data))

	return nil
}
