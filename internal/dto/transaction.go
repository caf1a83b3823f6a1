package dto

import (
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a ledger row.
type CreateTransactionRequest struct {
	Description   string                     `json:"description" binding:"required,max=255"`
	Amount        decimal.Decimal            `json:"amount" binding:"gt=0" swaggertype:"string"`
	Type          domain.TransactionType     `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Category      domain.TransactionCategory `json:"category" binding:"required,category"`
	Status        domain.TransactionStatus   `json:"status" binding:"required,oneof=PAID PENDING"`
	DueDate       string                     `json:"dueDate" binding:"required,isodate"` // YYYY-MM-DD
	Supplier      *string                    `json:"supplier"`
	AttachmentURL *string                    `json:"attachmentUrl" binding:"omitempty,url"`
	Purpose       domain.TransactionPurpose  `json:"purpose" binding:"purpose"`
	Tender        domain.Tender              `json:"tender" binding:"tender"`
	TerminalID    *string                    `json:"terminalId"`
}

// UpdateTransactionRequest defines the fields that may change on a PENDING row.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	Description   *string                     `json:"description" binding:"omitempty,max=255"`
	Amount        *decimal.Decimal            `json:"amount" binding:"omitempty,gt=0" swaggertype:"string"`
	Category      *domain.TransactionCategory `json:"category" binding:"omitempty,category"`
	DueDate       *string                     `json:"dueDate" binding:"omitempty,isodate"`
	Supplier      *string                     `json:"supplier"`
	AttachmentURL *string                     `json:"attachmentUrl" binding:"omitempty,url"`
}

// ListTransactionsQuery holds the filters accepted by the transaction listing.
type ListTransactionsQuery struct {
	DueFrom  string `form:"dueFrom" binding:"omitempty,isodate"`
	DueTo    string `form:"dueTo" binding:"omitempty,isodate"`
	Type     string `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Status   string `form:"status" binding:"omitempty,oneof=PAID PENDING"`
	Category string `form:"category" binding:"omitempty,category"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// ListTransactionsResponse wraps a transaction listing.
type ListTransactionsResponse struct {
	Transactions []domain.FinancialTransaction `json:"transactions"`
}
