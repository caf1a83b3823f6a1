package repositories

import (
	"context"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
)

// ShiftSessionReader defines read operations for shift sessions
type ShiftSessionReader interface {
	// FindLiveShiftSession returns the terminal's ACTIVE or CLOSING session,
	// or apperrors.ErrNotFound.
	FindLiveShiftSession(ctx context.Context, terminalID string) (*domain.ShiftSession, error)

	// FindLatestClosedShiftSession returns the most recent CLOSED session, or
	// apperrors.ErrNotFound when the terminal never closed a shift.
	FindLatestClosedShiftSession(ctx context.Context, terminalID string) (*domain.ShiftSession, error)
}

// ShiftSessionWriter defines write operations for shift sessions
type ShiftSessionWriter interface {
	// SaveShiftSession inserts a session. The (terminal, business date) pair
	// is unique; a second insert returns apperrors.ErrDuplicate.
	SaveShiftSession(ctx context.Context, session domain.ShiftSession) (*domain.ShiftSession, error)

	// TransitionShiftSession writes session's step and lifecycle fields if
	// the stored session is still at step from. It reports whether it did.
	TransitionShiftSession(ctx context.Context, session domain.ShiftSession, from domain.ShiftStep) (bool, error)
}

// ShiftSessionRepositoryFacade combines all shift session repository interfaces
type ShiftSessionRepositoryFacade interface {
	ShiftSessionReader
	ShiftSessionWriter
}
