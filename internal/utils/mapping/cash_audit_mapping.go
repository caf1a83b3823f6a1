package mapping

import (
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
)

// ToRecordCashAudit converts a domain CashAudit to a store record
func ToRecordCashAudit(d domain.CashAudit) portsrepo.Record {
	return portsrepo.Record{
		"id":                d.ID,
		"terminal_id":       d.TerminalID,
		"shift_session_id":  nullable(d.ShiftSessionID),
		"date":              domain.DateOf(d.Date),
		"status":            string(d.Status),
		"opening_balance":   d.OpeningBalance,
		"expected_cash":     d.ExpectedCash,
		"counted_cash":      d.CountedCash,
		"difference_value":  d.DifferenceValue,
		"audited_by":        d.AuditedBy,
		"notes":             d.Notes,
		"deposit_proof_url": nullable(d.DepositProofURL),
		"reviewed_by":       nullable(d.ReviewedBy),
		"reviewed_at":       nullable(d.ReviewedAt),
		"created_at":        d.CreatedAt,
	}
}

// ToDomainCashAudit converts a store record to a domain CashAudit
func ToDomainCashAudit(r portsrepo.Record) domain.CashAudit {
	return domain.CashAudit{
		ID:              stringOf(r, "id"),
		TerminalID:      stringOf(r, "terminal_id"),
		ShiftSessionID:  optString(r, "shift_session_id"),
		Date:            dateOf(r, "date"),
		Status:          domain.AuditStatus(stringOf(r, "status")),
		OpeningBalance:  decimalOf(r, "opening_balance"),
		ExpectedCash:    decimalOf(r, "expected_cash"),
		CountedCash:     decimalOf(r, "counted_cash"),
		DifferenceValue: decimalOf(r, "difference_value"),
		AuditedBy:       stringOf(r, "audited_by"),
		Notes:           stringOf(r, "notes"),
		DepositProofURL: optString(r, "deposit_proof_url"),
		ReviewedBy:      optString(r, "reviewed_by"),
		ReviewedAt:      optTime(r, "reviewed_at"),
		CreatedAt:       timeOf(r, "created_at"),
	}
}

// ToDomainCashAuditSlice converts store records to domain audits
func ToDomainCashAuditSlice(rs []portsrepo.Record) []domain.CashAudit {
	ds := make([]domain.CashAudit, len(rs))
	for i, r := range rs {
		ds[i] = ToDomainCashAudit(r)
	}
	return ds
}

// ToRecordCashAuditFigures converts recounted figures to an update patch
func ToRecordCashAuditFigures(f domain.CashAuditFigures) portsrepo.Record {
	return portsrepo.Record{
		"opening_balance":  f.OpeningBalance,
		"expected_cash":    f.ExpectedCash,
		"counted_cash":     f.CountedCash,
		"difference_value": f.DifferenceValue,
	}
}

// ToRecordCashAuditReview converts a review decision to an update patch.
// The deposit proof is only written when one is supplied.
func ToRecordCashAuditReview(review domain.CashAuditReview) portsrepo.Record {
	patch := portsrepo.Record{
		"status":      string(review.Status),
		"notes":       review.Notes,
		"reviewed_by": review.ReviewedBy,
		"reviewed_at": review.ReviewedAt,
	}
	if review.DepositProofURL != nil {
		patch["deposit_proof_url"] = *review.DepositProofURL
	}
	return patch
}
