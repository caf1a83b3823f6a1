package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditStatus is the review state of a CashAudit.
type AuditStatus string

const (
	AuditPending   AuditStatus = "PENDING"
	AuditApproved  AuditStatus = "APPROVED"
	AuditContested AuditStatus = "CONTESTED"
)

func (s AuditStatus) IsValid() bool {
	return s == AuditPending || s == AuditApproved || s == AuditContested
}

// IsTerminal reports whether no further review transition is allowed.
func (s AuditStatus) IsTerminal() bool {
	return s == AuditApproved || s == AuditContested
}

// CanTransitionTo reports whether next is reachable from s.
func (s AuditStatus) CanTransitionTo(next AuditStatus) bool {
	return s == AuditPending && next.IsTerminal()
}

// CashAudit is the record produced when a shift is closed.
type CashAudit struct {
	ID              string          `json:"id"`
	TerminalID      string          `json:"terminalId"`
	ShiftSessionID  *string         `json:"shiftSessionId,omitempty"`
	Date            time.Time       `json:"date"`
	Status          AuditStatus     `json:"status"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	ExpectedCash    decimal.Decimal `json:"expectedCash"`
	CountedCash     decimal.Decimal `json:"countedCash"`
	DifferenceValue decimal.Decimal `json:"differenceValue"`
	AuditedBy       string          `json:"auditedBy"`
	Notes           string          `json:"notes"`
	DepositProofURL *string         `json:"depositProofUrl,omitempty"`
	ReviewedBy      *string         `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewedAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CashAuditFigures are the reconciliation amounts an audit records.
type CashAuditFigures struct {
	OpeningBalance  decimal.Decimal
	ExpectedCash    decimal.Decimal
	CountedCash     decimal.Decimal
	DifferenceValue decimal.Decimal
}

// Figures returns the amounts recorded on a.
func (a CashAudit) Figures() CashAuditFigures {
	return CashAuditFigures{
		OpeningBalance:  a.OpeningBalance,
		ExpectedCash:    a.ExpectedCash,
		CountedCash:     a.CountedCash,
		DifferenceValue: a.DifferenceValue,
	}
}

// Equal compares amounts by value, ignoring decimal scale.
func (f CashAuditFigures) Equal(o CashAuditFigures) bool {
	return f.OpeningBalance.Equal(o.OpeningBalance) &&
		f.ExpectedCash.Equal(o.ExpectedCash) &&
		f.CountedCash.Equal(o.CountedCash) &&
		f.DifferenceValue.Equal(o.DifferenceValue)
}

// CashAuditFilter narrows audit listings.
type CashAuditFilter struct {
	TerminalID string
	Status     AuditStatus
	From       *time.Time
	To         *time.Time
	// Before returns audits strictly older than (BeforeDate, BeforeID) in
	// (date desc, id desc) order. Used for cursor pagination.
	BeforeDate *time.Time
	BeforeID   string
	Limit      int
}

// CashAuditReview carries the fields written by a review decision.
type CashAuditReview struct {
	Status          AuditStatus
	Notes           string
	ReviewedBy      string
	ReviewedAt      time.Time
	DepositProofURL *string
}
