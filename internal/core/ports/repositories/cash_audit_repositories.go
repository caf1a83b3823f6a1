package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
)

// CashAuditReader defines read operations for cash audits
type CashAuditReader interface {
	FindCashAuditByID(ctx context.Context, id string) (*domain.CashAudit, error)

	// FindCashAuditByTerminalDate returns the audit a terminal produced on
	// date, or apperrors.ErrNotFound.
	FindCashAuditByTerminalDate(ctx context.Context, terminalID string, date time.Time) (*domain.CashAudit, error)

	// ListCashAudits returns audits newest first.
	ListCashAudits(ctx context.Context, filter domain.CashAuditFilter) ([]domain.CashAudit, error)
}

// CashAuditWriter defines write operations for cash audits
type CashAuditWriter interface {
	// SaveCashAudit inserts an audit. A second audit for the same terminal
	// and date returns apperrors.ErrDuplicate.
	SaveCashAudit(ctx context.Context, audit domain.CashAudit) (*domain.CashAudit, error)

	// ReviewCashAudit applies a review decision to a PENDING audit. It
	// reports false when the audit is missing or no longer PENDING.
	ReviewCashAudit(ctx context.Context, id string, review domain.CashAuditReview) (bool, error)

	// RecountCashAudit overwrites the figures of a PENDING audit. It
	// reports false when the audit is missing or already reviewed.
	RecountCashAudit(ctx context.Context, id string, figures domain.CashAuditFigures) (bool, error)
}

// CashAuditRepositoryFacade combines all cash audit repository interfaces
type CashAuditRepositoryFacade interface {
	CashAuditReader
	CashAuditWriter
}
