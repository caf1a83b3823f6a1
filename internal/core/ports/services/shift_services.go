package services

import (
	"context"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
)

// ShiftReaderSvc defines the read side of the terminal shift lifecycle
type ShiftReaderSvc interface {
	// GetCurrentShift returns the live session or, when none is live, the
	// OPEN view with the seed opening balance and the closed-today flag.
	GetCurrentShift(ctx context.Context, terminalID string) (*domain.ShiftView, error)

	// PollTransactions returns today's transactions with a live breakdown
	// preview. Callers poll again after PollInterval.
	PollTransactions(ctx context.Context, terminalID string) (*domain.ShiftSnapshot, error)
	PollInterval() time.Duration

	// CloseReport returns the full reconciliation of a CLOSING session.
	CloseReport(ctx context.Context, terminalID string) (*domain.ShiftReport, error)

	// ShiftHistory is the HISTORY view: the terminal's past audits, newest first.
	ShiftHistory(ctx context.Context, terminalID string, limit int) ([]domain.CashAudit, error)
}

// ShiftWriterSvc defines the lifecycle transitions of a terminal shift
type ShiftWriterSvc interface {
	// OpenShift moves OPEN to ACTIVE. It fails with apperrors.ErrConflict when
	// the terminal already closed or opened a shift today.
	OpenShift(ctx context.Context, terminalID string, req dto.OpenShiftRequest, operator string) (*domain.ShiftSession, error)

	AddSupply(ctx context.Context, terminalID string, req dto.TillMovementRequest, userID string) (*domain.FinancialTransaction, error)
	AddWithdrawal(ctx context.Context, terminalID string, req dto.TillMovementRequest, userID string) (*domain.FinancialTransaction, error)

	// ConfirmCount moves ACTIVE to CLOSING with the counted cash.
	ConfirmCount(ctx context.Context, terminalID string, req dto.ConfirmCountRequest, userID string) (*domain.ShiftSession, error)
	// ReopenCount moves CLOSING back to ACTIVE, discarding the count.
	ReopenCount(ctx context.Context, terminalID string, userID string) (*domain.ShiftSession, error)

	// CommitClose records the CashAudit and closes the session. It is safe to
	// retry after a partial failure.
	CommitClose(ctx context.Context, terminalID string, req dto.CommitCloseRequest, userID string) (*domain.CashAudit, error)
}

// ShiftSvcFacade combines all shift service interfaces
type ShiftSvcFacade interface {
	ShiftReaderSvc
	ShiftWriterSvc
}
