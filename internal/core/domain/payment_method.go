package domain

import "github.com/shopspring/decimal"

// PaymentMethod describes how a tender settles: the acquirer fee and the
// number of days until the money lands (D+N).
type PaymentMethod struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Tender         Tender          `json:"tender,omitempty"`
	FeePercentage  decimal.Decimal `json:"feePercentage"`
	SettlementDays int             `json:"settlementDays"`
	Active         bool            `json:"active"`
	AuditFields
}

// Fee returns the acquirer fee charged on gross.
func (m PaymentMethod) Fee(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(m.FeePercentage).Div(decimal.NewFromInt(100)).Round(2)
}
