package main

import (
	"context"
	"fmt"

	"github.com/SscSPs/pdv_backoffice/internal/platform/bootstrap"
	"github.com/spf13/cobra"
)

func billsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Recurring bill jobs",
	}

	var month string
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Create the month's pending expenses from the active recurring bills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				m, err := parseMonth(month, app.Services.Reporting.Today())
				if err != nil {
					return err
				}
				created, err := app.Services.RecurringBill.GenerateMonthBills(ctx, m, actor)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bill(s) created\n", m.Format("2006-01"), len(created))
				for _, txn := range created {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s  %s\n", txn.DueDate.Format("2006-01-02"), txn.Amount.StringFixed(2), txn.Description)
				}
				return nil
			})
		},
	}
	generate.Flags().StringVar(&month, "month", "", "Month to generate, YYYY-MM (default: current month)")

	cmd.AddCommand(generate)
	return cmd
}
