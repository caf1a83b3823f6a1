package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/SscSPs/pdv_backoffice/internal/platform/bootstrap"
	"github.com/SscSPs/pdv_backoffice/internal/platform/config"
	"github.com/spf13/cobra"
)

// actor is recorded as the author of rows written by pdvctl.
const actor = "pdvctl"

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "pdvctl",
		Short:         "PDV back-office maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				level = slog.LevelInfo
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(migrateCmd(), billsCmd(), reportCmd(), tokenCmd())
	return cmd
}

// withApp loads the configuration, builds the application and hands it to
// fn, closing everything afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := bootstrap.Build(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			slog.Warn("Error releasing resources", slog.String("error", cerr.Error()))
		}
	}()
	return fn(ctx, app)
}

// parseMonth reads a YYYY-MM flag value, falling back to today's month.
func parseMonth(raw string, today time.Time) (time.Time, error) {
	if raw == "" {
		first, _ := domain.MonthBounds(today)
		return first, nil
	}
	month, err := domain.ParseMonth(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --month %q, expected YYYY-MM", raw)
	}
	return month, nil
}

// parseDate reads a YYYY-MM-DD flag value, falling back to today.
func parseDate(raw string, today time.Time) (time.Time, error) {
	if raw == "" {
		return today, nil
	}
	day, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return day, nil
}
