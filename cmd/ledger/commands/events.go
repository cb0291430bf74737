package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/ledger-backend/internal/domain/ledger"
)

func eventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Print ledger events from Redis as JSON lines until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if appCtx.Bus.Client() == nil {
				return fmt.Errorf("event bus disabled (set REDIS_ADDR)")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			enc := json.NewEncoder(cmd.OutOrStdout())
			err := appCtx.Bus.Subscribe(ctx, func(evt ledger.LedgerEvent) {
				if err := enc.Encode(evt); err != nil {
					appCtx.Log.Warn("write event failed", "error", err)
				}
			})
			if err != nil {
				return err
			}
			<-ctx.Done()
			return nil
		},
	}
}
