package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/SscSPs/pdv_backoffice/internal/platform/config"
	"github.com/SscSPs/pdv_backoffice/internal/utils"
	"github.com/spf13/cobra"
)

// tokenCmd mints API tokens signed with JWT_SECRET, for terminals and local
// testing when no identity provider is available.
func tokenCmd() *cobra.Command {
	var (
		userID string
		name   string
		role   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := domain.Role(strings.ToUpper(role))
			if !r.IsValid() {
				return fmt.Errorf("invalid --role %q (want %s or %s)", role, domain.RoleOperator, domain.RoleManager)
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			signed, err := utils.GenerateJWT(userID, name, string(r), cfg.JWTSecret, cfg.JWTIssuer, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User id (token subject)")
	cmd.Flags().StringVar(&name, "name", "", "Display name recorded on shifts and reviews")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleOperator), "OPERATOR or MANAGER")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
