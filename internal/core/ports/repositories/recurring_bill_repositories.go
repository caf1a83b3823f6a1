package repositories

import (
	"context"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
)

// RecurringBillReader defines read operations for recurring bill templates
type RecurringBillReader interface {
	FindRecurringBillByID(ctx context.Context, id string) (*domain.RecurringBill, error)
	ListRecurringBills(ctx context.Context, activeOnly bool) ([]domain.RecurringBill, error)
}

// RecurringBillWriter defines write operations for recurring bill templates
type RecurringBillWriter interface {
	SaveRecurringBill(ctx context.Context, bill domain.RecurringBill) (*domain.RecurringBill, error)
	// UpdateRecurringBill returns apperrors.ErrNotFound when the id is unknown.
	UpdateRecurringBill(ctx context.Context, bill domain.RecurringBill) error
	DeleteRecurringBill(ctx context.Context, id string) error
}

// RecurringBillRepositoryFacade combines all recurring bill repository interfaces
type RecurringBillRepositoryFacade interface {
	RecurringBillReader
	RecurringBillWriter
}
