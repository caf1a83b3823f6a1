package domain

import "github.com/shopspring/decimal"

// RecurringBill is a monthly expense template.
type RecurringBill struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	Amount     decimal.Decimal     `json:"amount"`
	DayOfMonth int                 `json:"dayOfMonth"`
	Category   TransactionCategory `json:"category"`
	Supplier   *string             `json:"supplier,omitempty"`
	Active     bool                `json:"active"`
	AuditFields
}
