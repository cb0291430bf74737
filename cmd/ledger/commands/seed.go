package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/ledger-backend/internal/data/seed"
)

func seedCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo marketplace into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Migrate(); err != nil {
				return err
			}
			res, err := seed.NewSeeder(appCtx.DB, appCtx.Log).Demo(cmd.Context(), force)
			if err != nil {
				return err
			}
			if res.Skipped {
				fmt.Println("Store already has profiles; nothing seeded (use --force to add the demo set anyway).")
				return nil
			}
			fmt.Printf("Seeded %d profiles, %d contracts, %d jobs.\n", res.Profiles, res.Contracts, res.Jobs)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "seed even when profiles already exist")
	return cmd
}
