package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/cardsync/internal/app"
	"github.com/MKhiriev/cardsync/models"
)

// newStatusCommand creates the status command.
func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the local catalog's position against the published dataset",
		Long: `Show the local catalog's position against the published dataset.

The command fetches the manifest to learn the latest published version.
When the server is unreachable the local state is still reported, with
the reason field explaining that the manifest was unavailable.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientApp, _, err := newClientApp()
			if err != nil {
				return err
			}

			status, err := clientApp.Services().SyncService.GetSyncStatus(cmd.Context())
			if err != nil {
				return err
			}

			if opts.format == formatJSON {
				return printJSON(status)
			}

			printSyncStatus(status)
			return nil
		},
	}
}

func printSyncStatus(status models.ClientSyncStatus) {
	localVersion := status.LocalVersion
	if localVersion == "" {
		localVersion = app.MsgNeverSynced
	}

	latestVersion := status.LatestVersion
	if latestVersion == "" {
		latestVersion = "(unknown)"
	}

	fmt.Printf("dataset:         %s\n", status.Dataset)
	fmt.Printf("local version:   %s\n", localVersion)
	fmt.Printf("latest version:  %s\n", latestVersion)
	fmt.Printf("needs sync:      %t\n", status.NeedsSync)
	fmt.Printf("can refresh now: %t (%s)\n", status.CanRefreshNow, status.Reason)

	if status.NextExpectedPublishAt != nil {
		fmt.Printf("next publish:    %s\n", status.NextExpectedPublishAt.Format(time.RFC3339))
	}
}
