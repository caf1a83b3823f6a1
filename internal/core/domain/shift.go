package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftStep is the lifecycle step of a cash-register shift.
type ShiftStep string

const (
	// ShiftOpen means no session exists for the terminal today; one may be opened.
	ShiftOpen    ShiftStep = "OPEN"
	ShiftActive  ShiftStep = "ACTIVE"
	ShiftClosing ShiftStep = "CLOSING"
	ShiftClosed  ShiftStep = "CLOSED"
	// ShiftHistory is the read-only view over past audits; never persisted.
	ShiftHistory ShiftStep = "HISTORY"
)

var shiftTransitions = map[ShiftStep][]ShiftStep{
	ShiftOpen:    {ShiftActive},
	ShiftActive:  {ShiftClosing},
	ShiftClosing: {ShiftActive, ShiftClosed},
}

// CanTransitionTo reports whether next is reachable from s.
func (s ShiftStep) CanTransitionTo(next ShiftStep) bool {
	for _, allowed := range shiftTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ShiftSession is the persisted state of one terminal's shift on one business date.
type ShiftSession struct {
	ID                 string           `json:"id"`
	TerminalID         string           `json:"terminalId"`
	BusinessDate       time.Time        `json:"businessDate"`
	Step               ShiftStep        `json:"step"`
	OpeningBalance     decimal.Decimal  `json:"openingBalance"`
	CountedCash        *decimal.Decimal `json:"countedCash,omitempty"`
	NextOpeningBalance *decimal.Decimal `json:"nextOpeningBalance,omitempty"`
	Operator           string           `json:"operator"`
	AuditID            *string          `json:"auditId,omitempty"`
	OpenedAt           time.Time        `json:"openedAt"`
	CountConfirmedAt   *time.Time       `json:"countConfirmedAt,omitempty"`
	ClosedAt           *time.Time       `json:"closedAt,omitempty"`
}

// ShiftView is what a terminal sees: either its live session or, when none
// is live, whether a new one can be opened and with which seed balance.
type ShiftView struct {
	TerminalID         string          `json:"terminalId"`
	Step               ShiftStep       `json:"step"`
	BusinessDate       time.Time       `json:"businessDate"`
	Session            *ShiftSession   `json:"session,omitempty"`
	SeedOpeningBalance decimal.Decimal `json:"seedOpeningBalance"`
	ClosedToday        bool            `json:"closedToday"`
}

// ShiftSnapshot is the polled view of today's ledger for an active shift.
type ShiftSnapshot struct {
	TerminalID   string                 `json:"terminalId"`
	BusinessDate time.Time              `json:"businessDate"`
	Transactions []FinancialTransaction `json:"transactions"`
	Breakdown    CashBreakdown          `json:"breakdown"`
	FetchedAt    time.Time              `json:"fetchedAt"`
}

// ShiftReport is the report-review phase of closing: the full reconciliation
// for a session whose count has been confirmed.
type ShiftReport struct {
	Session      ShiftSession           `json:"session"`
	Transactions []FinancialTransaction `json:"transactions"`
	Breakdown    CashBreakdown          `json:"breakdown"`
}
