package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
	"github.com/SscSPs/pdv_backoffice/internal/utils/accounting"
)

// recurringBillService manages expense templates and their monthly materialisation.
type recurringBillService struct {
	BaseService
	billRepo portsrepo.RecurringBillRepositoryFacade
	txRepo   portsrepo.FinancialTransactionRepositoryFacade
}

// NewRecurringBillService creates a new RecurringBillService.
func NewRecurringBillService(billRepo portsrepo.RecurringBillRepositoryFacade, txRepo portsrepo.FinancialTransactionRepositoryFacade, options ...Option) portssvc.RecurringBillSvcFacade {
	return &recurringBillService{
		BaseService: newBaseService(options),
		billRepo:    billRepo,
		txRepo:      txRepo,
	}
}

var _ portssvc.RecurringBillSvcFacade = (*recurringBillService)(nil)

func validateRecurringBill(b domain.RecurringBill) error {
	if b.Title == "" {
		return apperrors.NewValidationFailedError("title is required")
	}
	if !b.Amount.IsPositive() {
		return apperrors.NewValidationFailedError("amount must be positive")
	}
	if b.DayOfMonth < 1 || b.DayOfMonth > 31 {
		return apperrors.NewValidationFailedError("dayOfMonth must be between 1 and 31")
	}
	if !b.Category.IsValid() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("invalid category %q", b.Category))
	}
	return nil
}

func (s *recurringBillService) CreateRecurringBill(ctx context.Context, req dto.CreateRecurringBillRequest, userID string) (*domain.RecurringBill, error) {
	now := s.Now()
	bill := domain.RecurringBill{
		Title:      strings.TrimSpace(req.Title),
		Amount:     req.Amount,
		DayOfMonth: req.DayOfMonth,
		Category:   req.Category,
		Supplier:   req.Supplier,
		Active:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := validateRecurringBill(bill); err != nil {
		return nil, err
	}

	saved, err := s.billRepo.SaveRecurringBill(ctx, bill)
	if err != nil {
		s.LogError(ctx, err, "Failed to save recurring bill", slog.String("title", bill.Title))
		return nil, fmt.Errorf("failed to create recurring bill: %w", err)
	}
	s.LogInfo(ctx, "Recurring bill created", slog.String("recurring_bill_id", saved.ID))
	return saved, nil
}

func (s *recurringBillService) GetRecurringBill(ctx context.Context, id string) (*domain.RecurringBill, error) {
	bill, err := s.billRepo.FindRecurringBillByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring bill %s: %w", id, err)
	}
	return bill, nil
}

func (s *recurringBillService) ListRecurringBills(ctx context.Context, activeOnly bool) ([]domain.RecurringBill, error) {
	bills, err := s.billRepo.ListRecurringBills(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recurring bills")
		return nil, fmt.Errorf("failed to list recurring bills: %w", err)
	}
	if bills == nil {
		return []domain.RecurringBill{}, nil
	}
	return bills, nil
}

func (s *recurringBillService) UpdateRecurringBill(ctx context.Context, id string, req dto.UpdateRecurringBillRequest, userID string) (*domain.RecurringBill, error) {
	bill, err := s.billRepo.FindRecurringBillByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring bill %s: %w", id, err)
	}

	if req.Title != nil {
		bill.Title = strings.TrimSpace(*req.Title)
	}
	if req.Amount != nil {
		bill.Amount = *req.Amount
	}
	if req.DayOfMonth != nil {
		bill.DayOfMonth = *req.DayOfMonth
	}
	if req.Category != nil {
		bill.Category = *req.Category
	}
	if req.Supplier != nil {
		bill.Supplier = req.Supplier
	}
	if req.Active != nil {
		bill.Active = *req.Active
	}
	if err := validateRecurringBill(*bill); err != nil {
		return nil, err
	}
	bill.LastUpdatedAt = s.Now()
	bill.LastUpdatedBy = userID

	if err := s.billRepo.UpdateRecurringBill(ctx, *bill); err != nil {
		s.LogError(ctx, err, "Failed to update recurring bill", slog.String("recurring_bill_id", id))
		return nil, fmt.Errorf("failed to update recurring bill %s: %w", id, err)
	}
	return bill, nil
}

// DeleteRecurringBill removes the template. Expenses it already generated stay.
func (s *recurringBillService) DeleteRecurringBill(ctx context.Context, id string) error {
	if err := s.billRepo.DeleteRecurringBill(ctx, id); err != nil {
		return fmt.Errorf("failed to delete recurring bill %s: %w", id, err)
	}
	s.LogInfo(ctx, "Recurring bill deleted", slog.String("recurring_bill_id", id))
	return nil
}

func (s *recurringBillService) GenerateMonthBills(ctx context.Context, month time.Time, userID string) ([]domain.FinancialTransaction, error) {
	first, last := domain.MonthBounds(month)
	logger := s.GetLogger(ctx).With(slog.String("month", first.Format("2006-01")))

	bills, err := s.billRepo.ListRecurringBills(ctx, true)
	if err != nil {
		logger.Error("Failed to list recurring bills", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate bills: %w", err)
	}
	existing, err := s.txRepo.ListTransactions(ctx, domain.TransactionFilter{
		Type:    domain.Expense,
		DueFrom: &first,
		DueTo:   &last,
	})
	if err != nil {
		logger.Error("Failed to list month expenses", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate bills: %w", err)
	}

	pending := accounting.MaterializeBills(bills, first, existing, userID, s.Now())
	if len(pending) == 0 {
		logger.Info("No recurring bills left to generate")
		return []domain.FinancialTransaction{}, nil
	}

	created, err := s.txRepo.SaveTransactions(ctx, pending)
	if err != nil {
		logger.Error("Failed to save generated bills", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate bills: %w", err)
	}

	s.metrics.BillsGenerated(len(created))
	s.publish(ctx, domain.EventBillsGenerated, first.Format("2006-01"), userID, map[string]any{
		"count": len(created),
	})
	logger.Info("Recurring bills generated", slog.Int("count", len(created)))
	return created, nil
}
