package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/ledger-backend/internal/app"
)

var (
	configPath string
	appCtx     *app.App
)

func Execute() error {
	root := &cobra.Command{
		Use:           "ledger",
		Short:         "Marketplace ledger service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := os.Setenv(app.ConfigPathEnv, configPath); err != nil {
					return err
				}
			}
			a, err := app.New(cmd.Context())
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (overrides "+app.ConfigPathEnv+")")

	root.AddCommand(serveCmd(), migrateCmd(), seedCmd(), tokenCmd(), eventsCmd())
	defer appCtx.Close()
	return root.Execute()
}
