package accounting

import (
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultProjectionDays is the horizon of a cash projection.
const DefaultProjectionDays = 30

// CurrentBalance is the realised cash position: PAID income minus PAID expense.
func CurrentBalance(transactions []domain.FinancialTransaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range transactions {
		if tx.Status != domain.StatusPaid {
			continue
		}
		if tx.Type == domain.Income {
			balance = balance.Add(tx.Amount)
		} else {
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance
}

// Project walks days calendar days starting at from, applying the PENDING rows
// due on each day to the realised balance. PENDING rows due outside the window
// are ignored.
func Project(transactions []domain.FinancialTransaction, from time.Time, days int) domain.CashProjection {
	if days <= 0 {
		days = DefaultProjectionDays
	}
	from = domain.DateOf(from)

	type flow struct{ in, out decimal.Decimal }
	pending := make(map[time.Time]*flow)
	for _, tx := range transactions {
		if tx.Status != domain.StatusPending {
			continue
		}
		day := domain.DateOf(tx.DueDate)
		f, ok := pending[day]
		if !ok {
			f = &flow{in: decimal.Zero, out: decimal.Zero}
			pending[day] = f
		}
		if tx.Type == domain.Income {
			f.in = f.in.Add(tx.Amount)
		} else {
			f.out = f.out.Add(tx.Amount)
		}
	}

	start := CurrentBalance(transactions)
	projection := domain.CashProjection{
		StartingBalance: start,
		Points:          make([]domain.ProjectionPoint, 0, days),
	}

	balance := start
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		point := domain.ProjectionPoint{Date: day, Inflow: decimal.Zero, Outflow: decimal.Zero}
		if f, ok := pending[day]; ok {
			point.Inflow = f.in
			point.Outflow = f.out
		}
		balance = balance.Add(point.Inflow).Sub(point.Outflow)
		point.Balance = balance

		if i == 0 || balance.LessThan(projection.MinBalance) {
			projection.MinBalance = balance
			projection.MinBalanceDate = day
		}
		projection.Points = append(projection.Points, point)
	}

	projection.Status = domain.ProjectionHealthy
	if projection.MinBalance.IsNegative() {
		projection.Status = domain.ProjectionShortfallRisk
	}
	return projection
}
