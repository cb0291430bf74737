package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var noMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger HTTP API until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !noMigrate {
				if err := appCtx.Migrate(); err != nil {
					return err
				}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			appCtx.Log.Info("Starting ledger server", "addr", appCtx.Cfg.Addr())
			err := appCtx.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&noMigrate, "no-migrate", false, "skip schema migration on startup")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the schema up to date and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return appCtx.Migrate()
		},
	}
}
