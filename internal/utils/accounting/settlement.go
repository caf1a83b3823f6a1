package accounting

import (
	"strings"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// matchPaymentMethod prefers a method bound to the sale's tender and falls
// back to one whose name appears in the description.
func matchPaymentMethod(tx domain.FinancialTransaction, tender domain.Tender, methods []domain.PaymentMethod) (domain.PaymentMethod, bool) {
	for _, m := range methods {
		if m.Active && m.Tender != domain.TenderNone && m.Tender == tender {
			return m, true
		}
	}
	upper := strings.ToUpper(tx.Description)
	for _, m := range methods {
		if m.Active && m.Name != "" && strings.Contains(upper, strings.ToUpper(m.Name)) {
			return m, true
		}
	}
	return domain.PaymentMethod{}, false
}

// SettlementSchedule projects the D+N payout of every electronic sale dated
// within [from, to]. Cash sales settle in the till and are skipped; sales no
// payment method matches are reported as unmatched.
func SettlementSchedule(transactions []domain.FinancialTransaction, methods []domain.PaymentMethod, from, to time.Time) domain.SettlementSchedule {
	schedule := domain.SettlementSchedule{
		From:       from,
		To:         to,
		Entries:    []domain.SettlementEntry{},
		Unmatched:  []string{},
		TotalGross: decimal.Zero,
		TotalFee:   decimal.Zero,
		TotalNet:   decimal.Zero,
	}

	for _, tx := range transactions {
		if tx.DueDate.Before(from) || tx.DueDate.After(to) {
			continue
		}
		c := Classify(tx)
		if c.Kind != KindSale || c.Tender == domain.TenderCash {
			continue
		}
		method, ok := matchPaymentMethod(tx, c.Tender, methods)
		if !ok {
			schedule.Unmatched = append(schedule.Unmatched, tx.ID)
			continue
		}
		fee := method.Fee(tx.Amount)
		entry := domain.SettlementEntry{
			TransactionID:     tx.ID,
			SaleDate:          tx.DueDate,
			Tender:            c.Tender,
			PaymentMethodID:   method.ID,
			PaymentMethodName: method.Name,
			Gross:             tx.Amount,
			Fee:               fee,
			Net:               tx.Amount.Sub(fee),
			SettlementDate:    tx.DueDate.AddDate(0, 0, method.SettlementDays),
		}
		schedule.Entries = append(schedule.Entries, entry)
		schedule.TotalGross = schedule.TotalGross.Add(entry.Gross)
		schedule.TotalFee = schedule.TotalFee.Add(entry.Fee)
		schedule.TotalNet = schedule.TotalNet.Add(entry.Net)
	}
	return schedule
}
