package mapping

import (
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
)

// ToRecordShiftSession converts a domain ShiftSession to a store record
func ToRecordShiftSession(d domain.ShiftSession) portsrepo.Record {
	r := ToRecordShiftSessionProgress(d)
	r["id"] = d.ID
	r["terminal_id"] = d.TerminalID
	r["business_date"] = domain.DateOf(d.BusinessDate)
	r["opening_balance"] = d.OpeningBalance
	r["operator"] = d.Operator
	r["opened_at"] = d.OpenedAt
	return r
}

// ToRecordShiftSessionProgress holds only the fields a lifecycle transition may change
func ToRecordShiftSessionProgress(d domain.ShiftSession) portsrepo.Record {
	return portsrepo.Record{
		"step":                 string(d.Step),
		"counted_cash":         nullable(d.CountedCash),
		"next_opening_balance": nullable(d.NextOpeningBalance),
		"audit_id":             nullable(d.AuditID),
		"count_confirmed_at":   nullable(d.CountConfirmedAt),
		"closed_at":            nullable(d.ClosedAt),
	}
}

// ToDomainShiftSession converts a store record to a domain ShiftSession
func ToDomainShiftSession(r portsrepo.Record) domain.ShiftSession {
	return domain.ShiftSession{
		ID:                 stringOf(r, "id"),
		TerminalID:         stringOf(r, "terminal_id"),
		BusinessDate:       dateOf(r, "business_date"),
		Step:               domain.ShiftStep(stringOf(r, "step")),
		OpeningBalance:     decimalOf(r, "opening_balance"),
		CountedCash:        optDecimal(r, "counted_cash"),
		NextOpeningBalance: optDecimal(r, "next_opening_balance"),
		Operator:           stringOf(r, "operator"),
		AuditID:            optString(r, "audit_id"),
		OpenedAt:           timeOf(r, "opened_at"),
		CountConfirmedAt:   optTime(r, "count_confirmed_at"),
		ClosedAt:           optTime(r, "closed_at"),
	}
}
