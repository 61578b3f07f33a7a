package main

import (
	"fmt"

	"github.com/notekit/notekit/backend/go-services/internal/config"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply SQL schema migrations for the configured database",
		Long: `Apply pending schema migrations for DATABASE_DRIVER=postgres or sqlite.

MongoDB and the in-memory store need no migrations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			switch cfg.Database.Driver {
			case config.DriverPostgres, config.DriverSQLite:
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "driver %s has no SQL migrations\n", cfg.Database.Driver)
				return nil
			}
			_, closeStore, err := openStore(cmd.Context(), cfg, true)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			closeStore()
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
