package collections

import (
	"context"
	"fmt"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/pdv_backoffice/internal/utils/mapping"
)

type paymentMethodRepository struct {
	store portsrepo.Store
}

func newPaymentMethodRepository(store portsrepo.Store) *paymentMethodRepository {
	return &paymentMethodRepository{store: store}
}

var _ portsrepo.PaymentMethodRepositoryFacade = (*paymentMethodRepository)(nil)

const methodsColl = portsrepo.CollectionPaymentMethods

func (r *paymentMethodRepository) SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) (*domain.PaymentMethod, error) {
	stored, err := r.store.Insert(ctx, methodsColl, []portsrepo.Record{mapping.ToRecordPaymentMethod(method)})
	if err != nil {
		return nil, fmt.Errorf("failed to save payment method: %w", err)
	}
	saved := mapping.ToDomainPaymentMethod(stored[0])
	return &saved, nil
}

func (r *paymentMethodRepository) FindPaymentMethodByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	rec, err := findOne(ctx, r.store, methodsColl, portsrepo.Query{Filter: byID(id)})
	if err != nil {
		return nil, err
	}
	method := mapping.ToDomainPaymentMethod(rec)
	return &method, nil
}

func (r *paymentMethodRepository) ListPaymentMethods(ctx context.Context, activeOnly bool) ([]domain.PaymentMethod, error) {
	q := portsrepo.Query{Order: []portsrepo.Order{{Field: "name"}, {Field: "id"}}}
	if activeOnly {
		q.Filter = portsrepo.Filter{portsrepo.Eq("active", true)}
	}
	rows, err := r.store.Select(ctx, methodsColl, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return mapping.ToDomainPaymentMethodSlice(rows), nil
}

func (r *paymentMethodRepository) UpdatePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	patch := withoutKeys(mapping.ToRecordPaymentMethod(method), "id", "created_at", "created_by")
	n, err := r.store.Update(ctx, methodsColl, patch, byID(method.ID))
	if err != nil {
		return fmt.Errorf("failed to update payment method %s: %w", method.ID, err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *paymentMethodRepository) DeletePaymentMethod(ctx context.Context, id string) error {
	n, err := r.store.Delete(ctx, methodsColl, byID(id))
	if err != nil {
		return fmt.Errorf("failed to delete payment method %s: %w", id, err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
