package main

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/cardsync/models"
)

// newVersionCommand creates the version command.
func newVersionCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print build information",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			printBuildInfo(buildInfo)
		},
	}
}
