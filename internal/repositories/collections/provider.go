// Package collections implements the typed repositories on top of any
// portsrepo.Store, so the same code runs against PostgreSQL and memory.
package collections

import (
	"context"
	"fmt"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every typed repository to store.
func NewRepositoryProvider(store portsrepo.Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:   newTransactionRepository(store),
		CashAuditRepo:     newCashAuditRepository(store),
		PaymentMethodRepo: newPaymentMethodRepository(store),
		RecurringBillRepo: newRecurringBillRepository(store),
		ShiftSessionRepo:  newShiftSessionRepository(store),
	}
}

// findOne selects the single record matching filter or returns ErrNotFound.
func findOne(ctx context.Context, store portsrepo.Store, collection string, q portsrepo.Query) (portsrepo.Record, error) {
	q.Limit = 1
	rows, err := store.Select(ctx, collection, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return rows[0], nil
}

func byID(id string) portsrepo.Filter {
	return portsrepo.Filter{portsrepo.Eq("id", id)}
}

// withoutKeys drops fields that must never be rewritten by an update.
func withoutKeys(r portsrepo.Record, keys ...string) portsrepo.Record {
	for _, k := range keys {
		delete(r, k)
	}
	return r
}
