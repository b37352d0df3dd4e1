package main

import (
	"github.com/spf13/cobra"
)

// newDiffCommand creates the diff command.
func newDiffCommand(opts *rootOptions) *cobra.Command {
	var (
		dataRoot     string
		fromSnapshot string
		toSnapshot   string
		fromVersion  string
		toVersion    string
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Generate one incremental patch between two snapshots",
		Long: `Diff two published snapshots and write the incremental patch under
<data-root>/patches/. Snapshot paths are relative to the data root.

Example:
  cardsync-pipeline diff --data-root ./data \
    --from-version v260824 --from-snapshot versions/v260824.snapshot.json \
    --to-version v260825 --to-snapshot versions/v260825.snapshot.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := opts.newPipeline(dataRoot).Diff(cmd.Context(), fromVersion, toVersion, fromSnapshot, toSnapshot)
			if err != nil {
				return err
			}

			return printResult(stats)
		},
	}

	cmd.Flags().StringVar(&dataRoot, "data-root", "", "artifact tree root directory (required)")
	cmd.Flags().StringVar(&fromVersion, "from-version", "", "older version id (required)")
	cmd.Flags().StringVar(&toVersion, "to-version", "", "newer version id (required)")
	cmd.Flags().StringVar(&fromSnapshot, "from-snapshot", "", "relative path of the older snapshot (required)")
	cmd.Flags().StringVar(&toSnapshot, "to-snapshot", "", "relative path of the newer snapshot (required)")
	for _, name := range []string{"data-root", "from-version", "to-version", "from-snapshot", "to-snapshot"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
