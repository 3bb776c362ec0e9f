package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ZamarianPatrick/oasis-backend/di"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and the websocket change feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := di.InitApp(&flags)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.Run(ctx)
		},
	}
}
