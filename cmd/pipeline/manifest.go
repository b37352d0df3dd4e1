package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/cardsync/internal/store"
)

// newManifestCommand creates the manifest command.
func newManifestCommand(opts *rootOptions) *cobra.Command {
	var dataRoot string

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Rebuild the manifest from the stored versions index",
		Long: `Rebuild manifest.json from <data-root>/versions_index.json. Use it
after editing the index or regenerating artifacts out of band.

Example:
  cardsync-pipeline manifest --data-root ./data`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := opts.newPipeline(dataRoot).PublishManifest(cmd.Context())
			if err != nil {
				return err
			}

			return printResult(struct {
				ManifestPath  string `json:"manifestPath"`
				LatestVersion string `json:"latestVersion"`
			}{filepath.Join(dataRoot, store.ManifestFileName), manifest.LatestVersion})
		},
	}

	cmd.Flags().StringVar(&dataRoot, "data-root", "", "artifact tree root directory (required)")
	_ = cmd.MarkFlagRequired("data-root")

	return cmd
}
