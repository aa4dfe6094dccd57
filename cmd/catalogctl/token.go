package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"catalog-backend/internal/config"
	"catalog-backend/pkg/jwt"
)

func tokenCommand() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if role != jwt.RoleAdmin && role != jwt.RoleEditor {
				return fmt.Errorf("role must be %s or %s", jwt.RoleAdmin, jwt.RoleEditor)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = time.Duration(cfg.JWT.AccessTokenExpiry) * time.Minute
			}

			token, err := jwt.NewManager(cfg.JWT.Secret, ttl).GenerateAccessToken(subject, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "catalogctl", "token subject")
	cmd.Flags().StringVar(&role, "role", jwt.RoleEditor, "token role (admin, editor)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default JWT_ACCESS_EXPIRY)")
	return cmd
}
