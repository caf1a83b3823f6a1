package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/utils/accounting"
	"github.com/SscSPs/pdv_backoffice/internal/utils/export"
)

// maxReportDays bounds projection horizons and settlement windows.
const maxReportDays = 366

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	txRepo     portsrepo.FinancialTransactionReader
	methodRepo portsrepo.PaymentMethodReader
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(txRepo portsrepo.FinancialTransactionReader, methodRepo portsrepo.PaymentMethodReader, options ...Option) portssvc.ReportingSvc {
	return &reportingService{
		BaseService: newBaseService(options),
		txRepo:      txRepo,
		methodRepo:  methodRepo,
	}
}

// Ensure reportingService implements the ReportingSvc interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// IncomeStatement generates the DRE for the month containing month
func (s *reportingService) IncomeStatement(ctx context.Context, month time.Time) (*domain.IncomeStatement, error) {
	first, last := domain.MonthBounds(month)
	txs, err := s.txRepo.ListTransactions(ctx, domain.TransactionFilter{DueFrom: &first, DueTo: &last})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for income statement",
			slog.String("month", first.Format("2006-01")))
		return nil, fmt.Errorf("failed to build income statement: %w", err)
	}

	dre := accounting.IncomeStatement(txs, first, last)
	s.LogDebug(ctx, "Income statement generated",
		slog.String("month", first.Format("2006-01")),
		slog.Int("transactions", len(txs)))
	return &dre, nil
}

// CashProjection walks the realised balance forward over the PENDING rows due
// in the window
func (s *reportingService) CashProjection(ctx context.Context, from time.Time, days int) (*domain.CashProjection, error) {
	if days <= 0 {
		days = s.projectionDays
	}
	if days > maxReportDays {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("days must be at most %d", maxReportDays))
	}
	from = domain.DateOf(from)
	to := from.AddDate(0, 0, days-1)

	paid, err := s.txRepo.ListTransactions(ctx, domain.TransactionFilter{Status: domain.StatusPaid})
	if err != nil {
		s.LogError(ctx, err, "Failed to load paid transactions for projection")
		return nil, fmt.Errorf("failed to build cash projection: %w", err)
	}
	pending, err := s.txRepo.ListTransactions(ctx, domain.TransactionFilter{
		Status:  domain.StatusPending,
		DueFrom: &from,
		DueTo:   &to,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load pending transactions for projection")
		return nil, fmt.Errorf("failed to build cash projection: %w", err)
	}

	projection := accounting.Project(append(paid, pending...), from, days)
	if projection.Status == domain.ProjectionShortfallRisk {
		s.LogInfo(ctx, "Cash projection shows a shortfall",
			slog.String("min_balance", projection.MinBalance.String()),
			slog.String("min_balance_date", projection.MinBalanceDate.Format(domain.DateLayout)))
	}
	return &projection, nil
}

// CardSettlementSchedule lists the D+N payouts of electronic sales made in [from, to]
func (s *reportingService) CardSettlementSchedule(ctx context.Context, from, to time.Time) (*domain.SettlementSchedule, error) {
	from, to = domain.DateOf(from), domain.DateOf(to)
	if to.Before(from) {
		return nil, apperrors.NewValidationFailedError("to must not be before from")
	}
	if to.Sub(from) > maxReportDays*24*time.Hour {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("range must span at most %d days", maxReportDays))
	}

	sales, err := s.txRepo.ListTransactions(ctx, domain.TransactionFilter{
		Type:    domain.Income,
		DueFrom: &from,
		DueTo:   &to,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load sales for settlement schedule")
		return nil, fmt.Errorf("failed to build settlement schedule: %w", err)
	}
	methods, err := s.methodRepo.ListPaymentMethods(ctx, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payment methods for settlement schedule")
		return nil, fmt.Errorf("failed to build settlement schedule: %w", err)
	}

	schedule := accounting.SettlementSchedule(sales, methods, from, to)
	if len(schedule.Unmatched) > 0 {
		s.LogInfo(ctx, "Sales without a matching payment method",
			slog.Int("count", len(schedule.Unmatched)))
	}
	return &schedule, nil
}

func (s *reportingService) ExportIncomeStatement(ctx context.Context, month time.Time, w io.Writer) error {
	dre, err := s.IncomeStatement(ctx, month)
	if err != nil {
		return err
	}
	if err := export.WriteIncomeStatement(w, *dre); err != nil {
		return fmt.Errorf("failed to export income statement: %w", err)
	}
	return nil
}

func (s *reportingService) ExportCashProjection(ctx context.Context, from time.Time, days int, w io.Writer) error {
	projection, err := s.CashProjection(ctx, from, days)
	if err != nil {
		return err
	}
	if err := export.WriteCashProjection(w, *projection); err != nil {
		return fmt.Errorf("failed to export cash projection: %w", err)
	}
	return nil
}
