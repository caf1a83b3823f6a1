package collections

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/pdv_backoffice/internal/utils/mapping"
)

type cashAuditRepository struct {
	store portsrepo.Store
}

func newCashAuditRepository(store portsrepo.Store) *cashAuditRepository {
	return &cashAuditRepository{store: store}
}

var _ portsrepo.CashAuditRepositoryFacade = (*cashAuditRepository)(nil)

const auditsColl = portsrepo.CollectionCashAudits

func (r *cashAuditRepository) SaveCashAudit(ctx context.Context, audit domain.CashAudit) (*domain.CashAudit, error) {
	stored, err := r.store.Insert(ctx, auditsColl, []portsrepo.Record{mapping.ToRecordCashAudit(audit)})
	if err != nil {
		return nil, fmt.Errorf("failed to save cash audit: %w", err)
	}
	saved := mapping.ToDomainCashAudit(stored[0])
	return &saved, nil
}

func (r *cashAuditRepository) FindCashAuditByID(ctx context.Context, id string) (*domain.CashAudit, error) {
	rec, err := findOne(ctx, r.store, auditsColl, portsrepo.Query{Filter: byID(id)})
	if err != nil {
		return nil, err
	}
	audit := mapping.ToDomainCashAudit(rec)
	return &audit, nil
}

func (r *cashAuditRepository) FindCashAuditByTerminalDate(ctx context.Context, terminalID string, date time.Time) (*domain.CashAudit, error) {
	rec, err := findOne(ctx, r.store, auditsColl, portsrepo.Query{Filter: portsrepo.Filter{
		portsrepo.Eq("terminal_id", terminalID),
		portsrepo.Eq("date", domain.DateOf(date)),
	}})
	if err != nil {
		return nil, err
	}
	audit := mapping.ToDomainCashAudit(rec)
	return &audit, nil
}

func (r *cashAuditRepository) ListCashAudits(ctx context.Context, f domain.CashAuditFilter) ([]domain.CashAudit, error) {
	filter := portsrepo.Filter{}
	if f.TerminalID != "" {
		filter = append(filter, portsrepo.Eq("terminal_id", f.TerminalID))
	}
	if f.Status != "" {
		filter = append(filter, portsrepo.Eq("status", string(f.Status)))
	}
	if f.From != nil {
		filter = append(filter, portsrepo.Gte("date", domain.DateOf(*f.From)))
	}
	if f.To != nil {
		filter = append(filter, portsrepo.Lte("date", domain.DateOf(*f.To)))
	}

	q := portsrepo.Query{
		Filter: filter,
		Order:  []portsrepo.Order{{Field: "date", Desc: true}, {Field: "id", Desc: true}},
		Limit:  f.Limit,
	}

	// A keyset cursor spans a (date, id) tuple, which a conjunctive filter
	// cannot express; bound by date in the store and trim ties here.
	if f.BeforeDate == nil {
		rows, err := r.store.Select(ctx, auditsColl, q)
		if err != nil {
			return nil, fmt.Errorf("failed to list cash audits: %w", err)
		}
		return mapping.ToDomainCashAuditSlice(rows), nil
	}

	before := domain.DateOf(*f.BeforeDate)
	q.Filter = append(q.Filter, portsrepo.Lte("date", before))
	q.Limit = 0
	rows, err := r.store.Select(ctx, auditsColl, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash audits: %w", err)
	}
	out := make([]domain.CashAudit, 0, len(rows))
	for _, rec := range rows {
		audit := mapping.ToDomainCashAudit(rec)
		if audit.Date.Equal(before) && audit.ID >= f.BeforeID {
			continue
		}
		out = append(out, audit)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *cashAuditRepository) ReviewCashAudit(ctx context.Context, id string, review domain.CashAuditReview) (bool, error) {
	n, err := r.store.Update(ctx, auditsColl, mapping.ToRecordCashAuditReview(review), portsrepo.Filter{
		portsrepo.Eq("id", id),
		portsrepo.Eq("status", string(domain.AuditPending)),
	})
	if err != nil {
		return false, fmt.Errorf("failed to review cash audit %s: %w", id, err)
	}
	return n > 0, nil
}

func (r *cashAuditRepository) RecountCashAudit(ctx context.Context, id string, figures domain.CashAuditFigures) (bool, error) {
	n, err := r.store.Update(ctx, auditsColl, mapping.ToRecordCashAuditFigures(figures), portsrepo.Filter{
		portsrepo.Eq("id", id),
		portsrepo.Eq("status", string(domain.AuditPending)),
	})
	if err != nil {
		return false, fmt.Errorf("failed to recount cash audit %s: %w", id, err)
	}
	return n > 0, nil
}
