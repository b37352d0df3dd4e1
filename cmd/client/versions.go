package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/cardsync/internal/app"
)

// newVersionsCommand creates the versions command.
func newVersionsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "versions",
		Short:         "List dataset versions the local catalog has been at",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientApp, _, err := newClientApp()
			if err != nil {
				return err
			}

			records, err := clientApp.Services().SyncService.GetVersions(cmd.Context())
			if err != nil {
				return err
			}

			if opts.format == formatJSON {
				return printJSON(records)
			}

			if len(records) == 0 {
				fmt.Println(app.MsgNoVersionsApplied)
				return nil
			}

			for _, record := range records {
				fmt.Printf("%s  %6d records  %s  %s\n",
					record.Version, record.RecordCount, record.StateHash,
					record.CreatedAt.Format(time.RFC3339))
			}

			return nil
		},
	}
}
