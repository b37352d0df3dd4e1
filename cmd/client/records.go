package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/cardsync/internal/app"
	"github.com/MKhiriev/cardsync/models"
)

// newRecordsCommand creates the records command.
func newRecordsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "records <printing-id> [printing-id...]",
		Short: "Show local catalog records by printing id",
		Long: `Show local catalog records by printing id.

Unknown ids are reported separately; they do not fail the command.

Example:
  cardsync-client records card-001
  cardsync-client records card-001 card-002 card-003`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientApp, _, err := newClientApp()
			if err != nil {
				return err
			}

			records, err := clientApp.Services().SyncService.GetRecords(cmd.Context(), args)
			if err != nil {
				return err
			}

			if opts.format == formatJSON {
				return printJSON(records)
			}

			printRecords(args, records)
			return nil
		},
	}
}

// printRecords lists the found records in the order they were asked for,
// then names the ids that matched nothing.
func printRecords(requestedIDs []string, records map[string]models.Record) {
	if len(records) == 0 {
		fmt.Println(app.MsgNoRecordsFound)
		return
	}

	var missing []string
	for _, printingID := range requestedIDs {
		record, ok := records[printingID]
		if !ok {
			missing = append(missing, printingID)
			continue
		}

		fmt.Printf("%s  %s [%s #%s]  market %.2f  captured %s\n",
			record.PrintingID, record.Name, record.SetCode, record.CollectorNumber,
			record.MarketPrice, record.CapturedAt)
	}

	if len(missing) > 0 {
		fmt.Printf("not found: %s\n", strings.Join(missing, ", "))
	}
}
