package collections

import (
	"context"
	"fmt"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/pdv_backoffice/internal/utils/mapping"
)

type shiftSessionRepository struct {
	store portsrepo.Store
}

func newShiftSessionRepository(store portsrepo.Store) *shiftSessionRepository {
	return &shiftSessionRepository{store: store}
}

var _ portsrepo.ShiftSessionRepositoryFacade = (*shiftSessionRepository)(nil)

const sessionsColl = portsrepo.CollectionShiftSessions

var newestSessionFirst = []portsrepo.Order{{Field: "business_date", Desc: true}, {Field: "opened_at", Desc: true}}

func (r *shiftSessionRepository) SaveShiftSession(ctx context.Context, session domain.ShiftSession) (*domain.ShiftSession, error) {
	stored, err := r.store.Insert(ctx, sessionsColl, []portsrepo.Record{mapping.ToRecordShiftSession(session)})
	if err != nil {
		return nil, fmt.Errorf("failed to save shift session: %w", err)
	}
	saved := mapping.ToDomainShiftSession(stored[0])
	return &saved, nil
}

func (r *shiftSessionRepository) FindLiveShiftSession(ctx context.Context, terminalID string) (*domain.ShiftSession, error) {
	return r.findLatest(ctx, portsrepo.Filter{
		portsrepo.Eq("terminal_id", terminalID),
		portsrepo.Neq("step", string(domain.ShiftClosed)),
	})
}

func (r *shiftSessionRepository) FindLatestClosedShiftSession(ctx context.Context, terminalID string) (*domain.ShiftSession, error) {
	return r.findLatest(ctx, portsrepo.Filter{
		portsrepo.Eq("terminal_id", terminalID),
		portsrepo.Eq("step", string(domain.ShiftClosed)),
	})
}

func (r *shiftSessionRepository) findLatest(ctx context.Context, filter portsrepo.Filter) (*domain.ShiftSession, error) {
	rec, err := findOne(ctx, r.store, sessionsColl, portsrepo.Query{Filter: filter, Order: newestSessionFirst})
	if err != nil {
		return nil, err
	}
	session := mapping.ToDomainShiftSession(rec)
	return &session, nil
}

func (r *shiftSessionRepository) TransitionShiftSession(ctx context.Context, session domain.ShiftSession, from domain.ShiftStep) (bool, error) {
	n, err := r.store.Update(ctx, sessionsColl, mapping.ToRecordShiftSessionProgress(session), portsrepo.Filter{
		portsrepo.Eq("id", session.ID),
		portsrepo.Eq("step", string(from)),
	})
	if err != nil {
		return false, fmt.Errorf("failed to move shift session %s from %s to %s: %w", session.ID, from, session.Step, err)
	}
	return n > 0, nil
}
