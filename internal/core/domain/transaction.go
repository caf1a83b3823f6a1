package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of money.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// TransactionCategory groups transactions for the income statement.
type TransactionCategory string

const (
	CategoryFees        TransactionCategory = "FEES"
	CategoryUtility     TransactionCategory = "UTILITY"
	CategoryInventory   TransactionCategory = "INVENTORY"
	CategoryLabor       TransactionCategory = "LABOR"
	CategoryService     TransactionCategory = "SERVICE"
	CategoryOther       TransactionCategory = "OTHER"
	CategoryMaintenance TransactionCategory = "MAINTENANCE"
	CategoryLegal       TransactionCategory = "LEGAL"
	CategoryLoan        TransactionCategory = "LOAN"
)

var validCategories = map[TransactionCategory]bool{
	CategoryFees: true, CategoryUtility: true, CategoryInventory: true, CategoryLabor: true,
	CategoryService: true, CategoryOther: true, CategoryMaintenance: true, CategoryLegal: true,
	CategoryLoan: true,
}

func (c TransactionCategory) IsValid() bool {
	return validCategories[c]
}

// TransactionStatus is PAID (cash moved) or PENDING (scheduled).
type TransactionStatus string

const (
	StatusPaid    TransactionStatus = "PAID"
	StatusPending TransactionStatus = "PENDING"
)

func (s TransactionStatus) IsValid() bool {
	return s == StatusPaid || s == StatusPending
}

// TransactionPurpose is the explicit classification of a ledger row. Rows
// written before purposes existed carry PurposeUnset and are classified from
// their description tags.
type TransactionPurpose string

const (
	PurposeUnset          TransactionPurpose = ""
	PurposeSale           TransactionPurpose = "SALE"
	PurposeTillSupply     TransactionPurpose = "TILL_SUPPLY"
	PurposeTillWithdrawal TransactionPurpose = "TILL_WITHDRAWAL"
	PurposePayroll        TransactionPurpose = "PAYROLL"
	PurposeBill           TransactionPurpose = "BILL"
	PurposeOther          TransactionPurpose = "OTHER"
)

func (p TransactionPurpose) IsValid() bool {
	switch p {
	case PurposeUnset, PurposeSale, PurposeTillSupply, PurposeTillWithdrawal, PurposePayroll, PurposeBill, PurposeOther:
		return true
	}
	return false
}

// Tender is the payment instrument of a sale.
type Tender string

const (
	TenderNone   Tender = ""
	TenderCash   Tender = "CASH"
	TenderPix    Tender = "PIX"
	TenderCredit Tender = "CREDIT"
	TenderDebit  Tender = "DEBIT"
)

// Tenders lists the recognised tenders in classification order.
var Tenders = []Tender{TenderCash, TenderPix, TenderCredit, TenderDebit}

func (t Tender) IsValid() bool {
	switch t {
	case TenderNone, TenderCash, TenderPix, TenderCredit, TenderDebit:
		return true
	}
	return false
}

// FinancialTransaction is a single ledger row.
type FinancialTransaction struct {
	ID              string              `json:"id"`
	Description     string              `json:"description"`
	Amount          decimal.Decimal     `json:"amount"`
	Type            TransactionType     `json:"type"`
	Category        TransactionCategory `json:"category"`
	Status          TransactionStatus   `json:"status"`
	DueDate         time.Time           `json:"dueDate"`
	Supplier        *string             `json:"supplier,omitempty"`
	AttachmentURL   *string             `json:"attachmentUrl,omitempty"`
	Purpose         TransactionPurpose  `json:"purpose,omitempty"`
	Tender          Tender              `json:"tender,omitempty"`
	TerminalID      *string             `json:"terminalId,omitempty"`
	RecurringBillID *string             `json:"recurringBillId,omitempty"`
	PaidAt          *time.Time          `json:"paidAt,omitempty"`
	AuditFields
}

// IsSettled reports whether the row is PAID. PAID rows are immutable.
func (t FinancialTransaction) IsSettled() bool {
	return t.Status == StatusPaid
}

// Validate checks the invariants every persisted row must satisfy.
func (t FinancialTransaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: invalid transaction type %q", apperrors.ErrValidation, t.Type)
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: invalid category %q", apperrors.ErrValidation, t.Category)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, t.Status)
	}
	if !t.Purpose.IsValid() {
		return fmt.Errorf("%w: invalid purpose %q", apperrors.ErrValidation, t.Purpose)
	}
	if !t.Tender.IsValid() {
		return fmt.Errorf("%w: invalid tender %q", apperrors.ErrValidation, t.Tender)
	}
	if t.DueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", apperrors.ErrValidation)
	}
	return nil
}

// TransactionFilter narrows transaction listings. Zero values mean "any".
type TransactionFilter struct {
	DueFrom         *time.Time
	DueTo           *time.Time
	Type            TransactionType
	Status          TransactionStatus
	Category        TransactionCategory
	RecurringBillID string
	Limit           int
}
