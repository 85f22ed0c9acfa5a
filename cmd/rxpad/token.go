package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rxpad/rxpad/internal/config"
	"github.com/rxpad/rxpad/internal/platform/auth"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the local API (requires API_SECRET)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.APISecret == "" {
				return fmt.Errorf("API_SECRET is not set; the local API accepts requests without a token")
			}
			subject, _ := cmd.Flags().GetString("subject")
			ttl := cfg.APITokenTTL
			if cmd.Flags().Changed("ttl") {
				ttl, _ = cmd.Flags().GetDuration("ttl")
			}
			tok, err := auth.IssueToken([]byte(cfg.APISecret), subject, time.Now(), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().String("subject", "rxpad-client", "Who the token is for")
	cmd.Flags().Duration("ttl", 0, "Token lifetime; 0 never expires (default API_TOKEN_TTL)")
	return cmd
}
