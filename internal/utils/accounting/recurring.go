package accounting

import (
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
)

// BillDueDate returns the date in month's month for dayOfMonth, clamped to
// the last day when the month is shorter.
func BillDueDate(month time.Time, dayOfMonth int) time.Time {
	first, last := domain.MonthBounds(month)
	if dayOfMonth < 1 {
		dayOfMonth = 1
	}
	if dayOfMonth > last.Day() {
		return last
	}
	return first.AddDate(0, 0, dayOfMonth-1)
}

// MaterializeBills turns active templates into PENDING expenses for month.
// Templates that already have a row in existing for that month are skipped,
// so running it twice for the same month yields nothing new.
func MaterializeBills(bills []domain.RecurringBill, month time.Time, existing []domain.FinancialTransaction, createdBy string, now time.Time) []domain.FinancialTransaction {
	first, last := domain.MonthBounds(month)
	done := make(map[string]bool)
	for _, tx := range existing {
		if tx.RecurringBillID == nil {
			continue
		}
		if tx.DueDate.Before(first) || tx.DueDate.After(last) {
			continue
		}
		done[*tx.RecurringBillID] = true
	}

	out := make([]domain.FinancialTransaction, 0, len(bills))
	for _, bill := range bills {
		if !bill.Active || done[bill.ID] {
			continue
		}
		billID := bill.ID
		out = append(out, domain.FinancialTransaction{
			Description:     bill.Title,
			Amount:          bill.Amount,
			Type:            domain.Expense,
			Category:        bill.Category,
			Status:          domain.StatusPending,
			DueDate:         BillDueDate(month, bill.DayOfMonth),
			Supplier:        bill.Supplier,
			Purpose:         domain.PurposeBill,
			RecurringBillID: &billID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     createdBy,
				LastUpdatedAt: now,
				LastUpdatedBy: createdBy,
			},
		})
	}
	return out
}
