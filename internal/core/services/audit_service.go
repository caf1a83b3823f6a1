package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
	"github.com/SscSPs/pdv_backoffice/internal/utils/export"
	"github.com/SscSPs/pdv_backoffice/internal/utils/pagination"
)

const defaultAuditPageSize = 50

// auditService implements the manager review of cash audits.
type auditService struct {
	BaseService
	auditRepo portsrepo.CashAuditRepositoryFacade
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.CashAuditRepositoryFacade, options ...Option) portssvc.AuditSvcFacade {
	return &auditService{
		BaseService: newBaseService(options),
		auditRepo:   auditRepo,
	}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// ContestedNotes prefixes the reviewer's justification to the notes the
// operator wrote at close.
func ContestedNotes(reviewer, justification, original string) string {
	notes := fmt.Sprintf("[CONTESTED by %s] %s", reviewer, strings.TrimSpace(justification))
	if original = strings.TrimSpace(original); original != "" {
		notes += "\n\n" + original
	}
	return notes
}

func (s *auditService) GetAudit(ctx context.Context, id string) (*domain.CashAudit, error) {
	audit, err := s.auditRepo.FindCashAuditByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get cash audit %s: %w", id, err)
	}
	return audit, nil
}

func (s *auditService) filterFromQuery(query dto.ListCashAuditsQuery) (domain.CashAuditFilter, error) {
	filter := domain.CashAuditFilter{
		TerminalID: strings.TrimSpace(query.TerminalID),
		Status:     domain.AuditStatus(query.Status),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return filter, apperrors.NewValidationFailedError("invalid audit status")
	}
	if query.From != "" {
		from, err := parseDate("from", query.From)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if query.To != "" {
		to, err := parseDate("to", query.To)
		if err != nil {
			return filter, err
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, apperrors.NewValidationFailedError("to must not be before from")
	}
	return filter, nil
}

func (s *auditService) ListAudits(ctx context.Context, query dto.ListCashAuditsQuery) ([]domain.CashAudit, *string, error) {
	filter, err := s.filterFromQuery(query)
	if err != nil {
		return nil, nil, err
	}
	if query.NextToken != "" {
		date, id, err := pagination.DecodeToken(query.NextToken)
		if err != nil {
			return nil, nil, err
		}
		filter.BeforeDate = &date
		filter.BeforeID = id
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultAuditPageSize
	}
	// One extra row tells whether another page exists.
	filter.Limit = limit + 1

	audits, err := s.auditRepo.ListCashAudits(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash audits")
		return nil, nil, fmt.Errorf("failed to list cash audits: %w", err)
	}
	if len(audits) <= limit {
		if audits == nil {
			audits = []domain.CashAudit{}
		}
		return audits, nil, nil
	}

	audits = audits[:limit]
	last := audits[limit-1]
	token := pagination.EncodeToken(last.Date, last.ID)
	return audits, &token, nil
}

func (s *auditService) ExportAudits(ctx context.Context, query dto.ListCashAuditsQuery, w io.Writer) error {
	filter, err := s.filterFromQuery(query)
	if err != nil {
		return err
	}
	audits, err := s.auditRepo.ListCashAudits(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash audits for export")
		return fmt.Errorf("failed to list cash audits: %w", err)
	}
	if err := export.WriteCashAudits(w, audits); err != nil {
		return fmt.Errorf("failed to export cash audits: %w", err)
	}
	return nil
}

func (s *auditService) ApproveAudit(ctx context.Context, id string, req dto.ApproveAuditRequest, reviewer string) (*domain.CashAudit, error) {
	audit, err := s.pendingAudit(ctx, id)
	if err != nil {
		return nil, err
	}
	review := domain.CashAuditReview{
		Status:          domain.AuditApproved,
		Notes:           audit.Notes,
		ReviewedBy:      reviewer,
		ReviewedAt:      s.Now(),
		DepositProofURL: req.DepositProofURL,
	}
	return s.review(ctx, audit, review)
}

func (s *auditService) ContestAudit(ctx context.Context, id string, req dto.ContestAuditRequest, reviewer string) (*domain.CashAudit, error) {
	if strings.TrimSpace(req.Justification) == "" {
		return nil, apperrors.NewValidationFailedError("justification is required to contest an audit")
	}
	audit, err := s.pendingAudit(ctx, id)
	if err != nil {
		return nil, err
	}
	review := domain.CashAuditReview{
		Status:     domain.AuditContested,
		Notes:      ContestedNotes(reviewer, req.Justification, audit.Notes),
		ReviewedBy: reviewer,
		ReviewedAt: s.Now(),
	}
	return s.review(ctx, audit, review)
}

func (s *auditService) pendingAudit(ctx context.Context, id string) (*domain.CashAudit, error) {
	audit, err := s.auditRepo.FindCashAuditByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get cash audit %s: %w", id, err)
	}
	if audit.Status.IsTerminal() {
		return nil, apperrors.NewInvalidTransitionError(fmt.Sprintf("audit is already %s", audit.Status))
	}
	return audit, nil
}

func (s *auditService) review(ctx context.Context, audit *domain.CashAudit, review domain.CashAuditReview) (*domain.CashAudit, error) {
	if !audit.Status.CanTransitionTo(review.Status) {
		return nil, apperrors.NewInvalidTransitionError(fmt.Sprintf("cannot move audit from %s to %s", audit.Status, review.Status))
	}
	applied, err := s.auditRepo.ReviewCashAudit(ctx, audit.ID, review)
	if err != nil {
		s.LogError(ctx, err, "Failed to review cash audit", slog.String("audit_id", audit.ID))
		return nil, fmt.Errorf("failed to review cash audit %s: %w", audit.ID, err)
	}
	if !applied {
		return nil, apperrors.NewInvalidTransitionError("audit was reviewed by another request")
	}

	reviewed := *audit
	reviewed.Status = review.Status
	reviewed.Notes = review.Notes
	reviewed.ReviewedBy = &review.ReviewedBy
	reviewed.ReviewedAt = &review.ReviewedAt
	if review.DepositProofURL != nil {
		reviewed.DepositProofURL = review.DepositProofURL
	}

	eventType := domain.EventAuditApproved
	if review.Status == domain.AuditContested {
		eventType = domain.EventAuditContested
	}
	s.metrics.AuditReviewed(strings.ToLower(string(review.Status)))
	s.publish(ctx, eventType, audit.ID, review.ReviewedBy, map[string]any{
		"terminal_id": audit.TerminalID,
		"date":        audit.Date.Format(domain.DateLayout),
	})
	s.LogInfo(ctx, "Cash audit reviewed",
		slog.String("audit_id", audit.ID),
		slog.String("status", string(review.Status)),
		slog.String("reviewer", review.ReviewedBy))
	return &reviewed, nil
}
