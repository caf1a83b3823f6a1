package mapping

import (
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
)

// ToRecordTransaction converts a domain FinancialTransaction to a store record
func ToRecordTransaction(d domain.FinancialTransaction) portsrepo.Record {
	r := portsrepo.Record{
		"id":                d.ID,
		"description":       d.Description,
		"amount":            d.Amount,
		"type":              string(d.Type),
		"category":          string(d.Category),
		"status":            string(d.Status),
		"due_date":          domain.DateOf(d.DueDate),
		"supplier":          nullable(d.Supplier),
		"attachment_url":    nullable(d.AttachmentURL),
		"purpose":           string(d.Purpose),
		"tender":            string(d.Tender),
		"terminal_id":       nullable(d.TerminalID),
		"recurring_bill_id": nullable(d.RecurringBillID),
		"paid_at":           nullable(d.PaidAt),
	}
	putAuditFields(r, d.AuditFields)
	return r
}

// ToDomainTransaction converts a store record to a domain FinancialTransaction
func ToDomainTransaction(r portsrepo.Record) domain.FinancialTransaction {
	return domain.FinancialTransaction{
		ID:              stringOf(r, "id"),
		Description:     stringOf(r, "description"),
		Amount:          decimalOf(r, "amount"),
		Type:            domain.TransactionType(stringOf(r, "type")),
		Category:        domain.TransactionCategory(stringOf(r, "category")),
		Status:          domain.TransactionStatus(stringOf(r, "status")),
		DueDate:         dateOf(r, "due_date"),
		Supplier:        optString(r, "supplier"),
		AttachmentURL:   optString(r, "attachment_url"),
		Purpose:         domain.TransactionPurpose(stringOf(r, "purpose")),
		Tender:          domain.Tender(stringOf(r, "tender")),
		TerminalID:      optString(r, "terminal_id"),
		RecurringBillID: optString(r, "recurring_bill_id"),
		PaidAt:          optTime(r, "paid_at"),
		AuditFields:     toDomainAuditFields(r),
	}
}

// ToDomainTransactionSlice converts store records to domain transactions
func ToDomainTransactionSlice(rs []portsrepo.Record) []domain.FinancialTransaction {
	ds := make([]domain.FinancialTransaction, len(rs))
	for i, r := range rs {
		ds[i] = ToDomainTransaction(r)
	}
	return ds
}
