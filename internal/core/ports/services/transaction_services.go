package services

import (
	"context"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
)

// TransactionReaderSvc defines read operations for ledger rows
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, id string) (*domain.FinancialTransaction, error)
	ListTransactions(ctx context.Context, query dto.ListTransactionsQuery) ([]domain.FinancialTransaction, error)
}

// TransactionWriterSvc defines write operations for ledger rows
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.FinancialTransaction, error)

	// UpdateTransaction and DeleteTransaction only apply to PENDING rows;
	// PAID rows yield apperrors.ErrConflict.
	UpdateTransaction(ctx context.Context, id string, req dto.UpdateTransactionRequest, userID string) (*domain.FinancialTransaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	// SettleTransaction liquidates a PENDING row. Settling twice yields
	// apperrors.ErrInvalidTransition.
	SettleTransaction(ctx context.Context, id string, userID string) (*domain.FinancialTransaction, error)
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
