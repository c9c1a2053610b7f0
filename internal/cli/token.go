package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cryptomobile/internal/auth"
)

func (a *app) tokenCmd() *cobra.Command {
	var sub string
	var roles []string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API bearer token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ttl == 0 {
				ttl = a.v.GetDuration(keyJWTTTL)
			}
			tok, err := auth.NewTokens(a.v.GetString(keyJWTSecret), ttl).Sign(sub, roles)
			if err != nil {
				return err
			}
			a.log.Debugw("token minted", "sub", sub, "roles", roles)
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&sub, "sub", "", "token subject")
	cmd.Flags().StringSliceVar(&roles, "role", []string{auth.RoleUser}, "role to grant, repeatable")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default JWT_EXPIRES_IN, else 24h)")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
