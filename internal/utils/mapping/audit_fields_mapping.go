package mapping

import (
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// putAuditFields writes the audit columns of d into r
func putAuditFields(r portsrepo.Record, d domain.AuditFields) {
	r["created_at"] = d.CreatedAt
	r["created_by"] = d.CreatedBy
	r["last_updated_at"] = d.LastUpdatedAt
	r["last_updated_by"] = d.LastUpdatedBy
}

// toDomainAuditFields reads the audit columns of r
func toDomainAuditFields(r portsrepo.Record) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     timeOf(r, "created_at"),
		CreatedBy:     stringOf(r, "created_by"),
		LastUpdatedAt: timeOf(r, "last_updated_at"),
		LastUpdatedBy: stringOf(r, "last_updated_by"),
	}
}

// The helpers below read one column tolerantly: a missing or NULL column
// yields the zero value (or nil for optional fields).

func stringOf(r portsrepo.Record, key string) string {
	s, _ := r[key].(string)
	return s
}

func optString(r portsrepo.Record, key string) *string {
	s, ok := r[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func decimalOf(r portsrepo.Record, key string) decimal.Decimal {
	d, ok := r[key].(decimal.Decimal)
	if !ok {
		return decimal.Zero
	}
	return d
}

func optDecimal(r portsrepo.Record, key string) *decimal.Decimal {
	d, ok := r[key].(decimal.Decimal)
	if !ok {
		return nil
	}
	return &d
}

func timeOf(r portsrepo.Record, key string) time.Time {
	t, _ := r[key].(time.Time)
	return t
}

func optTime(r portsrepo.Record, key string) *time.Time {
	t, ok := r[key].(time.Time)
	if !ok {
		return nil
	}
	return &t
}

// dateOf reads a DATE column as a UTC calendar day.
func dateOf(r portsrepo.Record, key string) time.Time {
	t, ok := r[key].(time.Time)
	if !ok {
		return time.Time{}
	}
	return domain.DateOf(t)
}

func boolOf(r portsrepo.Record, key string) bool {
	b, _ := r[key].(bool)
	return b
}

func intOf(r portsrepo.Record, key string) int {
	switch n := r[key].(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	}
	return 0
}

// The helpers below turn optional domain fields into store values.

func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
