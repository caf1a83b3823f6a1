package dto

import "github.com/SscSPs/pdv_backoffice/internal/core/domain"

// ApproveAuditRequest approves a PENDING audit, optionally attaching the
// bank deposit proof.
type ApproveAuditRequest struct {
	DepositProofURL *string `json:"depositProofUrl" binding:"omitempty,url"`
}

// ContestAuditRequest contests a PENDING audit.
type ContestAuditRequest struct {
	Justification string `json:"justification" binding:"required,max=1000"`
}

// ListCashAuditsQuery holds the filters and cursor of the audit listing.
type ListCashAuditsQuery struct {
	TerminalID string `form:"terminalId"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING APPROVED CONTESTED"`
	From       string `form:"from" binding:"omitempty,isodate"`
	To         string `form:"to" binding:"omitempty,isodate"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken  string `form:"nextToken"`
}

// ListCashAuditsResponse is one page of audits, newest first.
type ListCashAuditsResponse struct {
	Audits    []domain.CashAudit `json:"audits"`
	NextToken *string            `json:"nextToken,omitempty"`
}
