package main

import (
	"github.com/spf13/cobra"
)

// newCompactCommand creates the compact command.
func newCompactCommand(opts *rootOptions) *cobra.Command {
	var (
		dataRoot     string
		fromSnapshot string
		toSnapshot   string
		fromVersion  string
		toVersion    string
	)

	cmd := &cobra.Command{
		Use:   "compact",
		Short: "Generate one compacted patch spanning several versions",
		Long: `Diff an older snapshot directly against the latest one and write the
single-hop compacted patch under <data-root>/compacted/. Snapshot
paths are relative to the data root.

Example:
  cardsync-pipeline compact --data-root ./data \
    --from-version v260820 --from-snapshot versions/v260820.snapshot.json \
    --to-version v260825 --to-snapshot versions/v260825.snapshot.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := opts.newPipeline(dataRoot).Compact(cmd.Context(), fromVersion, toVersion, fromSnapshot, toSnapshot)
			if err != nil {
				return err
			}

			return printResult(patch)
		},
	}

	cmd.Flags().StringVar(&dataRoot, "data-root", "", "artifact tree root directory (required)")
	cmd.Flags().StringVar(&fromVersion, "from-version", "", "older version id (required)")
	cmd.Flags().StringVar(&toVersion, "to-version", "", "latest version id (required)")
	cmd.Flags().StringVar(&fromSnapshot, "from-snapshot", "", "relative path of the older snapshot (required)")
	cmd.Flags().StringVar(&toSnapshot, "to-snapshot", "", "relative path of the latest snapshot (required)")
	for _, name := range []string{"data-root", "from-version", "to-version", "from-snapshot", "to-snapshot"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
