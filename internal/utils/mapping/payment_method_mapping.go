package mapping

import (
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
)

// ToRecordPaymentMethod converts a domain PaymentMethod to a store record
func ToRecordPaymentMethod(d domain.PaymentMethod) portsrepo.Record {
	r := portsrepo.Record{
		"id":              d.ID,
		"name":            d.Name,
		"tender":          string(d.Tender),
		"fee_percentage":  d.FeePercentage,
		"settlement_days": int64(d.SettlementDays),
		"active":          d.Active,
	}
	putAuditFields(r, d.AuditFields)
	return r
}

// ToDomainPaymentMethod converts a store record to a domain PaymentMethod
func ToDomainPaymentMethod(r portsrepo.Record) domain.PaymentMethod {
	return domain.PaymentMethod{
		ID:             stringOf(r, "id"),
		Name:           stringOf(r, "name"),
		Tender:         domain.Tender(stringOf(r, "tender")),
		FeePercentage:  decimalOf(r, "fee_percentage"),
		SettlementDays: intOf(r, "settlement_days"),
		Active:         boolOf(r, "active"),
		AuditFields:    toDomainAuditFields(r),
	}
}

// ToDomainPaymentMethodSlice converts store records to domain payment methods
func ToDomainPaymentMethodSlice(rs []portsrepo.Record) []domain.PaymentMethod {
	ds := make([]domain.PaymentMethod, len(rs))
	for i, r := range rs {
		ds[i] = ToDomainPaymentMethod(r)
	}
	return ds
}
