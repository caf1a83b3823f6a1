package services

import (
	"context"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
)

// RecurringBillSvcFacade manages monthly expense templates
type RecurringBillSvcFacade interface {
	CreateRecurringBill(ctx context.Context, req dto.CreateRecurringBillRequest, userID string) (*domain.RecurringBill, error)
	GetRecurringBill(ctx context.Context, id string) (*domain.RecurringBill, error)
	ListRecurringBills(ctx context.Context, activeOnly bool) ([]domain.RecurringBill, error)
	UpdateRecurringBill(ctx context.Context, id string, req dto.UpdateRecurringBillRequest, userID string) (*domain.RecurringBill, error)
	DeleteRecurringBill(ctx context.Context, id string) error

	// GenerateMonthBills materialises the active templates as PENDING
	// expenses for month. Running it again for the same month creates nothing.
	GenerateMonthBills(ctx context.Context, month time.Time, userID string) ([]domain.FinancialTransaction, error)
}
