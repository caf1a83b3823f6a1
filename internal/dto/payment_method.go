package dto

import (
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentMethodRequest defines the data needed to register a payment method.
type CreatePaymentMethodRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	Tender         domain.Tender   `json:"tender" binding:"tender"`
	FeePercentage  decimal.Decimal `json:"feePercentage" binding:"gte=0,lte=100" swaggertype:"string"`
	SettlementDays int             `json:"settlementDays" binding:"gte=0,lte=365"`
}

// UpdatePaymentMethodRequest defines the data allowed for updating a payment method.
type UpdatePaymentMethodRequest struct {
	Name           *string          `json:"name" binding:"omitempty,max=100"`
	Tender         *domain.Tender   `json:"tender" binding:"omitempty,tender"`
	FeePercentage  *decimal.Decimal `json:"feePercentage" binding:"omitempty,gte=0,lte=100" swaggertype:"string"`
	SettlementDays *int             `json:"settlementDays" binding:"omitempty,gte=0,lte=365"`
	Active         *bool            `json:"active"`
}
