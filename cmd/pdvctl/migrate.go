package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/pdv_backoffice/internal/platform/config"
	"github.com/SscSPs/pdv_backoffice/pkg/database"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert database migrations",
	}
	cmd.AddCommand(
		migrateDirectionCmd(database.Up, "Apply every pending migration"),
		migrateDirectionCmd(database.Down, "Revert the most recent migration"),
	)
	return cmd
}

func migrateDirectionCmd(dir database.Direction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(dir),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.StoreDriver != config.StoreDriverPostgres {
				return fmt.Errorf("migrations need STORE_DRIVER=%s", config.StoreDriverPostgres)
			}
			return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, dir, slog.Default())
		},
	}
}
