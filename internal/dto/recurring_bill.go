package dto

import (
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecurringBillRequest defines a monthly expense template.
type CreateRecurringBillRequest struct {
	Title      string                     `json:"title" binding:"required,max=255"`
	Amount     decimal.Decimal            `json:"amount" binding:"gt=0" swaggertype:"string"`
	DayOfMonth int                        `json:"dayOfMonth" binding:"required,min=1,max=31"`
	Category   domain.TransactionCategory `json:"category" binding:"required,category"`
	Supplier   *string                    `json:"supplier"`
}

// UpdateRecurringBillRequest defines the data allowed for updating a template.
type UpdateRecurringBillRequest struct {
	Title      *string                     `json:"title" binding:"omitempty,max=255"`
	Amount     *decimal.Decimal            `json:"amount" binding:"omitempty,gt=0" swaggertype:"string"`
	DayOfMonth *int                        `json:"dayOfMonth" binding:"omitempty,min=1,max=31"`
	Category   *domain.TransactionCategory `json:"category" binding:"omitempty,category"`
	Supplier   *string                     `json:"supplier"`
	Active     *bool                       `json:"active"`
}

// GenerateBillsRequest selects the month to materialise.
type GenerateBillsRequest struct {
	Month string `json:"month" binding:"required,month"` // YYYY-MM
}

// GenerateBillsResponse lists the transactions created by a generation run.
type GenerateBillsResponse struct {
	Month   string                        `json:"month"`
	Created []domain.FinancialTransaction `json:"created"`
}
