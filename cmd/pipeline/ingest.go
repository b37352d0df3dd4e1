package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/cardsync/internal/pipeline"
)

// newIngestCommand creates the ingest command.
func newIngestCommand(opts *rootOptions) *cobra.Command {
	var (
		sourceFile string
		outDir     string
		version    string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Normalize one source dump into a snapshot only",
		Long: `Normalize one source dump into a snapshot under <out-dir>/versions/,
without touching the index or the manifest. Prints the version entry
describing the snapshot.

Example:
  cardsync-pipeline ingest --source-file ./dump.json.gz --out-dir ./data --version v260825`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if version == "" {
				version = pipeline.VersionFromDate(time.Now().UTC())
			}

			entry, err := opts.newPipeline(outDir).Ingest(cmd.Context(), sourceFile, version)
			if err != nil {
				return err
			}

			return printResult(entry)
		},
	}

	cmd.Flags().StringVar(&sourceFile, "source-file", "", "source dump path, plain or gzipped JSON (required)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "artifact tree root to write the snapshot under (required)")
	cmd.Flags().StringVar(&version, "version", "", "version id, vYYMMDD of today when empty")
	_ = cmd.MarkFlagRequired("source-file")
	_ = cmd.MarkFlagRequired("out-dir")

	return cmd
}
