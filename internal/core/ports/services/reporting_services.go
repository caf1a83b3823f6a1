package services

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
)

// ReportingSvc defines the financial reports
type ReportingSvc interface {
	// IncomeStatement builds the DRE for the month containing month.
	IncomeStatement(ctx context.Context, month time.Time) (*domain.IncomeStatement, error)

	// CashProjection projects the balance for days days starting at from.
	CashProjection(ctx context.Context, from time.Time, days int) (*domain.CashProjection, error)

	// CardSettlementSchedule lists the expected payouts of electronic sales
	// made between from and to.
	CardSettlementSchedule(ctx context.Context, from, to time.Time) (*domain.SettlementSchedule, error)

	ExportIncomeStatement(ctx context.Context, month time.Time, w io.Writer) error
	ExportCashProjection(ctx context.Context, from time.Time, days int, w io.Writer) error

	// Today is the current business date, used when callers omit dates.
	Today() time.Time
}
