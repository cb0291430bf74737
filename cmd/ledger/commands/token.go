package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/yungbote/ledger-backend/internal/platform/dbctx"
)

func tokenCmd() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <profile-id>",
		Short: "Sign a bearer token for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !appCtx.Services.Identity.TokensEnabled() {
				return fmt.Errorf("bearer tokens disabled (set JWT_SECRET_KEY)")
			}
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid profile id %q", args[0])
			}
			profile, err := appCtx.Repos.Profile.GetByID(dbctx.Context{Ctx: cmd.Context()}, uint(id))
			if err != nil {
				return err
			}
			if profile == nil {
				return fmt.Errorf("profile %d not found", id)
			}
			token, err := appCtx.Services.Identity.IssueToken(profile, ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
