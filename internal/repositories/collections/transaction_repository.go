package collections

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/pdv_backoffice/internal/utils/mapping"
)

type transactionRepository struct {
	store portsrepo.Store
}

func newTransactionRepository(store portsrepo.Store) *transactionRepository {
	return &transactionRepository{store: store}
}

var _ portsrepo.FinancialTransactionRepositoryFacade = (*transactionRepository)(nil)

const transactionsColl = portsrepo.CollectionFinancialTransactions

func (r *transactionRepository) SaveTransactions(ctx context.Context, txs []domain.FinancialTransaction) ([]domain.FinancialTransaction, error) {
	if len(txs) == 0 {
		return []domain.FinancialTransaction{}, nil
	}
	records := make([]portsrepo.Record, len(txs))
	for i, tx := range txs {
		records[i] = mapping.ToRecordTransaction(tx)
	}
	stored, err := r.store.Insert(ctx, transactionsColl, records)
	if err != nil {
		return nil, fmt.Errorf("failed to save transactions: %w", err)
	}
	return mapping.ToDomainTransactionSlice(stored), nil
}

func (r *transactionRepository) FindTransactionByID(ctx context.Context, id string) (*domain.FinancialTransaction, error) {
	rec, err := findOne(ctx, r.store, transactionsColl, portsrepo.Query{Filter: byID(id)})
	if err != nil {
		return nil, err
	}
	tx := mapping.ToDomainTransaction(rec)
	return &tx, nil
}

func (r *transactionRepository) ListTransactions(ctx context.Context, f domain.TransactionFilter) ([]domain.FinancialTransaction, error) {
	filter := portsrepo.Filter{}
	if f.DueFrom != nil {
		filter = append(filter, portsrepo.Gte("due_date", domain.DateOf(*f.DueFrom)))
	}
	if f.DueTo != nil {
		filter = append(filter, portsrepo.Lte("due_date", domain.DateOf(*f.DueTo)))
	}
	if f.Type != "" {
		filter = append(filter, portsrepo.Eq("type", string(f.Type)))
	}
	if f.Status != "" {
		filter = append(filter, portsrepo.Eq("status", string(f.Status)))
	}
	if f.Category != "" {
		filter = append(filter, portsrepo.Eq("category", string(f.Category)))
	}
	if f.RecurringBillID != "" {
		filter = append(filter, portsrepo.Eq("recurring_bill_id", f.RecurringBillID))
	}

	rows, err := r.store.Select(ctx, transactionsColl, portsrepo.Query{
		Filter: filter,
		Order:  []portsrepo.Order{{Field: "due_date"}, {Field: "created_at"}, {Field: "id"}},
		Limit:  f.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return mapping.ToDomainTransactionSlice(rows), nil
}

func (r *transactionRepository) UpdatePendingTransaction(ctx context.Context, tx domain.FinancialTransaction) (bool, error) {
	patch := withoutKeys(mapping.ToRecordTransaction(tx), "id", "status", "paid_at", "created_at", "created_by")
	n, err := r.store.Update(ctx, transactionsColl, patch, portsrepo.Filter{
		portsrepo.Eq("id", tx.ID),
		portsrepo.Eq("status", string(domain.StatusPending)),
	})
	if err != nil {
		return false, fmt.Errorf("failed to update transaction %s: %w", tx.ID, err)
	}
	return n > 0, nil
}

func (r *transactionRepository) SettleTransaction(ctx context.Context, id string, paidAt time.Time, userID string) (bool, error) {
	n, err := r.store.Update(ctx, transactionsColl, portsrepo.Record{
		"status":          string(domain.StatusPaid),
		"paid_at":         paidAt,
		"last_updated_at": paidAt,
		"last_updated_by": userID,
	}, portsrepo.Filter{
		portsrepo.Eq("id", id),
		portsrepo.Eq("status", string(domain.StatusPending)),
	})
	if err != nil {
		return false, fmt.Errorf("failed to settle transaction %s: %w", id, err)
	}
	return n > 0, nil
}

func (r *transactionRepository) DeletePendingTransaction(ctx context.Context, id string) (bool, error) {
	n, err := r.store.Delete(ctx, transactionsColl, portsrepo.Filter{
		portsrepo.Eq("id", id),
		portsrepo.Eq("status", string(domain.StatusPending)),
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	return n > 0, nil
}
