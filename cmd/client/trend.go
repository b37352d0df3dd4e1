package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/cardsync/internal/app"
	"github.com/MKhiriev/cardsync/models"
)

// newTrendCommand creates the trend command.
func newTrendCommand(opts *rootOptions) *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:   "trend <printing-id>",
		Short: "Show the price movement of one printing",
		Long: `Show the price movement of one printing, derived from the two most
recent captured values of the chosen price column.

Deltas within ±0.009 are reported as flat.

Example:
  cardsync-client trend card-001
  cardsync-client trend card-001 --column low_price`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			priceColumn := models.PriceColumn(column)
			if !models.KnownPriceColumn(priceColumn) {
				return fmt.Errorf("unknown price column %q: must be one of %s, %s, %s",
					column, models.PriceColumnMarket, models.PriceColumnLow, models.PriceColumnHigh)
			}

			clientApp, _, err := newClientApp()
			if err != nil {
				return err
			}

			trend, err := clientApp.Services().SyncService.GetTrend(cmd.Context(), args[0], priceColumn)
			if err != nil {
				return err
			}

			if opts.format == formatJSON {
				return printJSON(trend)
			}

			printTrend(trend)
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", string(models.PriceColumnMarket), "price column (market_price|low_price|high_price)")

	return cmd
}

func printTrend(trend models.PriceTrend) {
	if trend.Direction == models.TrendNone {
		fmt.Printf("%s %s: %s\n", trend.PrintingID, trend.Column, app.MsgNoTrendData)
		return
	}

	fmt.Printf("%s %s: %s\n", trend.PrintingID, trend.Column, trend.Direction)

	if trend.Current != nil {
		fmt.Printf("  current:  %.2f\n", *trend.Current)
	}
	if trend.Previous != nil {
		fmt.Printf("  previous: %.2f\n", *trend.Previous)
	}
	if trend.Delta != nil {
		fmt.Printf("  delta:    %+.2f\n", *trend.Delta)
	}
	if trend.LastCapturedAt != "" {
		fmt.Printf("  captured: %s\n", trend.LastCapturedAt)
	}
}
