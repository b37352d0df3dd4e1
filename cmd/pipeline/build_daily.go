package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/cardsync/internal/pipeline"
	"github.com/MKhiriev/cardsync/internal/store"
)

// newBuildDailyCommand creates the build-daily command.
func newBuildDailyCommand(opts *rootOptions) *cobra.Command {
	var (
		dataRoot   string
		sourceFile string
		sourceURL  string
		version    string
	)

	cmd := &cobra.Command{
		Use:   "build-daily",
		Short: "Ingest a source dump and rebuild index, patches and manifest",
		Long: `Run one full publish cycle: ingest a source dump into a snapshot,
upsert the versions index, regenerate incremental and compacted
patches and write the manifest last.

The dump is read from --source-file, which defaults to
<data-root>/incoming/default-cards.json.gz. With --source-url the dump
is downloaded there first. The version defaults to today (vYYMMDD).

Example:
  cardsync-pipeline build-daily --data-root ./data
  cardsync-pipeline build-daily --data-root ./data --source-url https://exports.example/default-cards.json.gz`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sourceFile == "" {
				sourceFile = filepath.Join(dataRoot, "incoming", "default-cards.json.gz")
			}

			if sourceURL != "" {
				if err := pipeline.FetchSource(cmd.Context(), sourceURL, sourceFile); err != nil {
					return err
				}
			}

			result, err := opts.newPipeline(dataRoot).BuildDaily(cmd.Context(), sourceFile, version)
			if err != nil {
				return err
			}

			return printResult(struct {
				pipeline.BuildDailyResult
				ManifestPath string `json:"manifestPath"`
			}{result, filepath.Join(dataRoot, store.ManifestFileName)})
		},
	}

	cmd.Flags().StringVar(&dataRoot, "data-root", "", "artifact tree root directory (required)")
	cmd.Flags().StringVar(&sourceFile, "source-file", "", "source dump path, plain or gzipped JSON")
	cmd.Flags().StringVar(&sourceURL, "source-url", "", "download the source dump from this URL first")
	cmd.Flags().StringVar(&version, "version", "", "version id to publish, vYYMMDD of today when empty")
	_ = cmd.MarkFlagRequired("data-root")

	return cmd
}
