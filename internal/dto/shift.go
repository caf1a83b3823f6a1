package dto

import (
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenShiftRequest opens a terminal's shift. When OpeningBalance is omitted
// the reserve left by the previous close is used.
type OpenShiftRequest struct {
	OpeningBalance *decimal.Decimal `json:"openingBalance" binding:"omitempty,gte=0" swaggertype:"string"`
}

// TillMovementRequest records a supply into or a withdrawal from the till.
type TillMovementRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"gt=0" swaggertype:"string"`
	Description string          `json:"description" binding:"max=200"`
}

// ConfirmCountRequest carries the operator's physical cash count.
type ConfirmCountRequest struct {
	CountedCash *decimal.Decimal `json:"countedCash" binding:"omitempty,gte=0" swaggertype:"string"` // required; checked by the service
}

// CommitCloseRequest finalizes a shift. Reserve is the cash left in the till
// for the next opening.
type CommitCloseRequest struct {
	Reserve *decimal.Decimal `json:"reserve" binding:"omitempty,gte=0" swaggertype:"string"` // required; checked by the service
	Notes   string           `json:"notes" binding:"max=1000"`
}

// ShiftPollResponse is the polled view of an active shift.
type ShiftPollResponse struct {
	domain.ShiftSnapshot
	PollAfterSeconds int `json:"pollAfterSeconds"`
}

// ShiftHistoryQuery bounds the HISTORY view.
type ShiftHistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=366"`
}
