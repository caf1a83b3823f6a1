package services

import (
	"context"
	"io"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
)

// AuditReaderSvc defines read operations for cash audits
type AuditReaderSvc interface {
	GetAudit(ctx context.Context, id string) (*domain.CashAudit, error)
	// ListAudits returns one page, newest first, and the token of the next page.
	ListAudits(ctx context.Context, query dto.ListCashAuditsQuery) ([]domain.CashAudit, *string, error)
	ExportAudits(ctx context.Context, query dto.ListCashAuditsQuery, w io.Writer) error
}

// AuditReviewerSvc defines the review decisions on a PENDING audit. A decided
// audit yields apperrors.ErrInvalidTransition.
type AuditReviewerSvc interface {
	ApproveAudit(ctx context.Context, id string, req dto.ApproveAuditRequest, reviewer string) (*domain.CashAudit, error)
	ContestAudit(ctx context.Context, id string, req dto.ContestAuditRequest, reviewer string) (*domain.CashAudit, error)
}

// AuditSvcFacade combines all audit service interfaces
type AuditSvcFacade interface {
	AuditReaderSvc
	AuditReviewerSvc
}
