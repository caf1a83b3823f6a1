package collections

import (
	"context"
	"fmt"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/pdv_backoffice/internal/utils/mapping"
)

type recurringBillRepository struct {
	store portsrepo.Store
}

func newRecurringBillRepository(store portsrepo.Store) *recurringBillRepository {
	return &recurringBillRepository{store: store}
}

var _ portsrepo.RecurringBillRepositoryFacade = (*recurringBillRepository)(nil)

const billsColl = portsrepo.CollectionRecurringBills

func (r *recurringBillRepository) SaveRecurringBill(ctx context.Context, bill domain.RecurringBill) (*domain.RecurringBill, error) {
	stored, err := r.store.Insert(ctx, billsColl, []portsrepo.Record{mapping.ToRecordRecurringBill(bill)})
	if err != nil {
		return nil, fmt.Errorf("failed to save recurring bill: %w", err)
	}
	saved := mapping.ToDomainRecurringBill(stored[0])
	return &saved, nil
}

func (r *recurringBillRepository) FindRecurringBillByID(ctx context.Context, id string) (*domain.RecurringBill, error) {
	rec, err := findOne(ctx, r.store, billsColl, portsrepo.Query{Filter: byID(id)})
	if err != nil {
		return nil, err
	}
	bill := mapping.ToDomainRecurringBill(rec)
	return &bill, nil
}

func (r *recurringBillRepository) ListRecurringBills(ctx context.Context, activeOnly bool) ([]domain.RecurringBill, error) {
	q := portsrepo.Query{Order: []portsrepo.Order{{Field: "day_of_month"}, {Field: "title"}, {Field: "id"}}}
	if activeOnly {
		q.Filter = portsrepo.Filter{portsrepo.Eq("active", true)}
	}
	rows, err := r.store.Select(ctx, billsColl, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring bills: %w", err)
	}
	return mapping.ToDomainRecurringBillSlice(rows), nil
}

func (r *recurringBillRepository) UpdateRecurringBill(ctx context.Context, bill domain.RecurringBill) error {
	patch := withoutKeys(mapping.ToRecordRecurringBill(bill), "id", "created_at", "created_by")
	n, err := r.store.Update(ctx, billsColl, patch, byID(bill.ID))
	if err != nil {
		return fmt.Errorf("failed to update recurring bill %s: %w", bill.ID, err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *recurringBillRepository) DeleteRecurringBill(ctx context.Context, id string) error {
	n, err := r.store.Delete(ctx, billsColl, byID(id))
	if err != nil {
		return fmt.Errorf("failed to delete recurring bill %s: %w", id, err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
