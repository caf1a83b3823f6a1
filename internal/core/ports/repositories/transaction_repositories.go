package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
)

// FinancialTransactionReader defines read operations for ledger rows
type FinancialTransactionReader interface {
	// FindTransactionByID retrieves a single row or apperrors.ErrNotFound.
	FindTransactionByID(ctx context.Context, id string) (*domain.FinancialTransaction, error)

	// ListTransactions retrieves rows matching filter ordered by due date.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.FinancialTransaction, error)
}

// FinancialTransactionWriter defines write operations for ledger rows
type FinancialTransactionWriter interface {
	// SaveTransactions inserts rows and returns them with their assigned ids.
	SaveTransactions(ctx context.Context, txs []domain.FinancialTransaction) ([]domain.FinancialTransaction, error)

	// UpdatePendingTransaction rewrites the mutable fields of a row that is
	// still PENDING. It reports false when no PENDING row with that id exists.
	UpdatePendingTransaction(ctx context.Context, tx domain.FinancialTransaction) (bool, error)

	// SettleTransaction performs the PENDING to PAID liquidation. It reports
	// false when no PENDING row with that id exists.
	SettleTransaction(ctx context.Context, id string, paidAt time.Time, userID string) (bool, error)

	// DeletePendingTransaction removes a PENDING row.
	DeletePendingTransaction(ctx context.Context, id string) (bool, error)
}

// FinancialTransactionRepositoryFacade combines all ledger repository interfaces
type FinancialTransactionRepositoryFacade interface {
	FinancialTransactionReader
	FinancialTransactionWriter
}
