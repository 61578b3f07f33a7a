package main

import (
	"fmt"
	"time"

	"github.com/notekit/notekit/backend/go-services/internal/config"
	"github.com/notekit/notekit/backend/go-services/internal/tokens"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		sub string
		ttl time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an HS256 bearer token for local testing",
		Long: `Mint a token signed with AUTH_JWT_SECRET that the built-in auth gateway accepts.

Examples:
  notesd token --sub alice
  curl -H "Authorization: Bearer $(notesd token --sub alice)" localhost:5010/api/notes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			tok, err := tokens.Mint(cfg.Auth.JWTSecret, sub, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&sub, "sub", "", "subject (owner identity)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
