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
)

// transactionService manages the ledger rows.
type transactionService struct {
	BaseService
	txRepo portsrepo.FinancialTransactionRepositoryFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txRepo portsrepo.FinancialTransactionRepositoryFacade, options ...Option) portssvc.TransactionSvcFacade {
	return &transactionService{
		BaseService: newBaseService(options),
		txRepo:      txRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// parseDate parses a YYYY-MM-DD calendar date.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", apperrors.ErrValidation, field)
	}
	return t, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.FinancialTransaction, error) {
	dueDate, err := parseDate("dueDate", req.DueDate)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	tx := domain.FinancialTransaction{
		Description:   strings.TrimSpace(req.Description),
		Amount:        req.Amount,
		Type:          req.Type,
		Category:      req.Category,
		Status:        req.Status,
		DueDate:       dueDate,
		Supplier:      req.Supplier,
		AttachmentURL: req.AttachmentURL,
		Purpose:       req.Purpose,
		Tender:        req.Tender,
		TerminalID:    req.TerminalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if tx.Status == domain.StatusPaid {
		tx.PaidAt = &now
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.txRepo.SaveTransactions(ctx, []domain.FinancialTransaction{tx})
	if err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", saved[0].ID),
		slog.String("type", string(saved[0].Type)),
		slog.String("status", string(saved[0].Status)))
	return &saved[0], nil
}

func (s *transactionService) GetTransaction(ctx context.Context, id string) (*domain.FinancialTransaction, error) {
	tx, err := s.txRepo.FindTransactionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", id, err)
	}
	return tx, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, query dto.ListTransactionsQuery) ([]domain.FinancialTransaction, error) {
	filter := domain.TransactionFilter{
		Type:     domain.TransactionType(query.Type),
		Status:   domain.TransactionStatus(query.Status),
		Category: domain.TransactionCategory(query.Category),
		Limit:    query.Limit,
	}
	if query.DueFrom != "" {
		from, err := parseDate("dueFrom", query.DueFrom)
		if err != nil {
			return nil, err
		}
		filter.DueFrom = &from
	}
	if query.DueTo != "" {
		to, err := parseDate("dueTo", query.DueTo)
		if err != nil {
			return nil, err
		}
		filter.DueTo = &to
	}
	if filter.DueFrom != nil && filter.DueTo != nil && filter.DueTo.Before(*filter.DueFrom) {
		return nil, apperrors.NewValidationFailedError("dueTo must not be before dueFrom")
	}

	txs, err := s.txRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txs == nil {
		return []domain.FinancialTransaction{}, nil
	}
	return txs, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, id string, req dto.UpdateTransactionRequest, userID string) (*domain.FinancialTransaction, error) {
	tx, err := s.txRepo.FindTransactionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", id, err)
	}
	if tx.IsSettled() {
		return nil, apperrors.NewConflictError("paid transactions cannot be changed")
	}

	if req.Description != nil {
		tx.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		tx.Amount = *req.Amount
	}
	if req.Category != nil {
		tx.Category = *req.Category
	}
	if req.DueDate != nil {
		dueDate, err := parseDate("dueDate", *req.DueDate)
		if err != nil {
			return nil, err
		}
		tx.DueDate = dueDate
	}
	if req.Supplier != nil {
		tx.Supplier = req.Supplier
	}
	if req.AttachmentURL != nil {
		tx.AttachmentURL = req.AttachmentURL
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	tx.LastUpdatedAt = s.Now()
	tx.LastUpdatedBy = userID

	updated, err := s.txRepo.UpdatePendingTransaction(ctx, *tx)
	if err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", id))
		return nil, fmt.Errorf("failed to update transaction %s: %w", id, err)
	}
	if !updated {
		// Settled between the read and the write.
		return nil, apperrors.NewConflictError("paid transactions cannot be changed")
	}
	return tx, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, id string) error {
	deleted, err := s.txRepo.DeletePendingTransaction(ctx, id)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", id))
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	if deleted {
		s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", id))
		return nil
	}
	if _, err := s.txRepo.FindTransactionByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	return apperrors.NewConflictError("paid transactions cannot be deleted")
}

func (s *transactionService) SettleTransaction(ctx context.Context, id string, userID string) (*domain.FinancialTransaction, error) {
	settled, err := s.txRepo.SettleTransaction(ctx, id, s.Now(), userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to settle transaction", slog.String("transaction_id", id))
		return nil, fmt.Errorf("failed to settle transaction %s: %w", id, err)
	}

	tx, err := s.txRepo.FindTransactionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to settle transaction %s: %w", id, err)
	}
	if !settled {
		return nil, apperrors.NewInvalidTransitionError("transaction is already paid")
	}

	s.LogInfo(ctx, "Transaction settled", slog.String("transaction_id", id), slog.String("user_id", userID))
	return tx, nil
}
