package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/SscSPs/pdv_backoffice/internal/platform/bootstrap"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print or export financial reports",
	}
	cmd.AddCommand(reportDRECmd(), reportProjectionCmd())
	return cmd
}

func reportDRECmd() *cobra.Command {
	var month, xlsx string
	cmd := &cobra.Command{
		Use:   "dre",
		Short: "Monthly income statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				m, err := parseMonth(month, app.Services.Reporting.Today())
				if err != nil {
					return err
				}
				if xlsx != "" {
					return writeFile(xlsx, func(w io.Writer) error {
						return app.Services.Reporting.ExportIncomeStatement(ctx, m, w)
					})
				}
				dre, err := app.Services.Reporting.IncomeStatement(ctx, m)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dre)
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month, YYYY-MM (default: current month)")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "Write an Excel workbook to this path instead of printing JSON")
	return cmd
}

func reportProjectionCmd() *cobra.Command {
	var (
		from string
		days int
		xlsx string
	)
	cmd := &cobra.Command{
		Use:   "projection",
		Short: "Day-by-day cash balance projection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				start, err := parseDate(from, app.Services.Reporting.Today())
				if err != nil {
					return err
				}
				if days <= 0 {
					days = app.Config.ProjectionDays
				}
				if xlsx != "" {
					return writeFile(xlsx, func(w io.Writer) error {
						return app.Services.Reporting.ExportCashProjection(ctx, start, days, w)
					})
				}
				projection, err := app.Services.Reporting.CashProjection(ctx, start, days)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), projection)
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "First projected day, YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&days, "days", 0, "Horizon in days (default: PROJECTION_DAYS)")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "Write an Excel workbook to this path instead of printing JSON")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(f)
}
