package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/cardsync/internal/app"
)

// newResetCommand creates the reset command.
func newResetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Wipe the local catalog, sync state and history for the dataset",
		Long: `Wipe the local catalog, sync state and history for the dataset.

Only local data is touched; the next sync rebuilds the catalog from the
latest published snapshot.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientApp, _, err := newClientApp()
			if err != nil {
				return err
			}

			if err := clientApp.Services().SyncService.Reset(cmd.Context()); err != nil {
				return err
			}

			fmt.Println(app.MsgCatalogReset)
			return nil
		},
	}
}
