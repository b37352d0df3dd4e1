package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/cardsync/models"
)

// newRunCommand creates the run command.
func newRunCommand(opts *rootOptions, buildInfo models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Keep the local catalog synced until interrupted",
		Long: `Keep the local catalog synced until interrupted.

The process syncs once immediately, then re-syncs on the configured
interval (WORKERS_SYNC_INTERVAL, default 1h) until it receives SIGINT,
SIGTERM or SIGQUIT.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			printBuildInfo(buildInfo)

			clientApp, log, err := newClientApp()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
			defer stop()

			log.Info().Msg("starting background sync loop")
			return clientApp.Run(ctx)
		},
	}
}
