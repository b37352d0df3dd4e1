package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/cardsync/internal/app"
)

// newHistoryCommand creates the history command.
func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent sync attempts, newest first",
		Long: `List recent sync attempts recorded in the apply history, newest first.

Failed attempts are listed too: the history survives the rolled-back
transaction that produced them.

Example:
  cardsync-client history
  cardsync-client history --limit 5`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientApp, _, err := newClientApp()
			if err != nil {
				return err
			}

			entries, err := clientApp.Services().SyncService.GetHistory(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if opts.format == formatJSON {
				return printJSON(entries)
			}

			if len(entries) == 0 {
				fmt.Println(app.MsgNoHistory)
				return nil
			}

			for _, entry := range entries {
				fromVersion := "-"
				if entry.FromVersion != nil {
					fromVersion = *entry.FromVersion
				}

				line := fmt.Sprintf("%s  %-9s  %-7s  %s -> %s  %d ms",
					entry.AppliedAt.Format(time.RFC3339), entry.Strategy, entry.Result,
					fromVersion, entry.ToVersion, entry.DurationMs)
				if entry.ErrorMessage != nil {
					line += "  " + *entry.ErrorMessage
				}

				fmt.Println(line)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "max entries to list (0 uses the default of 20)")

	return cmd
}
