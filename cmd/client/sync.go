package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/cardsync/internal/app"
	"github.com/MKhiriev/cardsync/models"
)

// newSyncCommand creates the sync command.
func newSyncCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run one synchronization cycle",
		Long: `Run one synchronization cycle against the artifact server.

The cycle fetches the manifest, compares the published latest version
with the local one, applies the selected catch-up artifacts (nothing,
a patch chain, a compacted patch, or a full snapshot) and records the
attempt in the apply history.

Example:
  cardsync-client sync
  cardsync-client --base-url http://127.0.0.1:8787 sync`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientApp, _, err := newClientApp()
			if err != nil {
				return err
			}

			result, err := clientApp.Services().SyncService.Sync(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s: %w", app.MsgSyncFailed, err)
			}

			if opts.format == formatJSON {
				return printJSON(result)
			}

			printSyncResult(result)
			return nil
		},
	}
}

func printSyncResult(result models.SyncResult) {
	if result.Strategy == models.StrategyNoop {
		fmt.Printf("%s: %s @ %s\n", app.MsgAlreadyUpToDate, result.Dataset, result.ToVersion)
		return
	}

	fromVersion := result.FromVersion
	if fromVersion == "" {
		fromVersion = "(none)"
	}

	fmt.Printf("%s: %s %s -> %s via %s\n", app.MsgSyncCompleted, result.Dataset, fromVersion, result.ToVersion, result.Strategy)
	fmt.Printf("  patches applied: %d\n", result.AppliedPatches)
	fmt.Printf("  records applied: %d\n", result.AppliedRecords)
	fmt.Printf("  records removed: %d\n", result.RemovedRecords)
	fmt.Printf("  state hash:      %s\n", result.StateHash)
	fmt.Printf("  duration:        %d ms\n", result.DurationMs)

	if result.HashMismatch {
		fmt.Println("  warning: computed state hash differs from the published hash")
	}
}
