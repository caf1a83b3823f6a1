package mapping

import (
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
)

// ToRecordRecurringBill converts a domain RecurringBill to a store record
func ToRecordRecurringBill(d domain.RecurringBill) portsrepo.Record {
	r := portsrepo.Record{
		"id":           d.ID,
		"title":        d.Title,
		"amount":       d.Amount,
		"day_of_month": int64(d.DayOfMonth),
		"category":     string(d.Category),
		"supplier":     nullable(d.Supplier),
		"active":       d.Active,
	}
	putAuditFields(r, d.AuditFields)
	return r
}

// ToDomainRecurringBill converts a store record to a domain RecurringBill
func ToDomainRecurringBill(r portsrepo.Record) domain.RecurringBill {
	return domain.RecurringBill{
		ID:          stringOf(r, "id"),
		Title:       stringOf(r, "title"),
		Amount:      decimalOf(r, "amount"),
		DayOfMonth:  intOf(r, "day_of_month"),
		Category:    domain.TransactionCategory(stringOf(r, "category")),
		Supplier:    optString(r, "supplier"),
		Active:      boolOf(r, "active"),
		AuditFields: toDomainAuditFields(r),
	}
}

// ToDomainRecurringBillSlice converts store records to domain recurring bills
func ToDomainRecurringBillSlice(rs []portsrepo.Record) []domain.RecurringBill {
	ds := make([]domain.RecurringBill, len(rs))
	for i, r := range rs {
		ds[i] = ToDomainRecurringBill(r)
	}
	return ds
}
