package accounting

import (
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest absolute difference still considered balanced (exclusive).
var BalanceTolerance = decimal.RequireFromString("0.01")

// UncategorizedResidual is the part of the sales total no tender accounted
// for, floored at zero when mis-tagged rows make the tender sum overshoot.
func UncategorizedResidual(total, tenderSum decimal.Decimal) decimal.Decimal {
	residual := total.Sub(tenderSum)
	if residual.IsNegative() {
		return decimal.Zero
	}
	return residual
}

// IsBalanced reports whether difference is within BalanceTolerance.
func IsBalanced(difference decimal.Decimal) bool {
	return difference.Abs().LessThan(BalanceTolerance)
}

// Reconcile computes the till breakdown for a shift from the day's ledger rows.
func Reconcile(openingBalance decimal.Decimal, transactions []domain.FinancialTransaction, countedCash decimal.Decimal) domain.CashBreakdown {
	b := domain.CashBreakdown{
		CashSales:             decimal.Zero,
		PixSales:              decimal.Zero,
		CreditSales:           decimal.Zero,
		DebitSales:            decimal.Zero,
		SystemCalculatedTotal: decimal.Zero,
		Supplies:              decimal.Zero,
		Expenses:              decimal.Zero,
		OpeningBalance:        openingBalance,
		CountedCash:           countedCash,
	}

	for _, tx := range transactions {
		c := Classify(tx)
		switch c.Kind {
		case KindSale:
			b.SystemCalculatedTotal = b.SystemCalculatedTotal.Add(tx.Amount)
			switch c.Tender {
			case domain.TenderCash:
				b.CashSales = b.CashSales.Add(tx.Amount)
			case domain.TenderPix:
				b.PixSales = b.PixSales.Add(tx.Amount)
			case domain.TenderCredit:
				b.CreditSales = b.CreditSales.Add(tx.Amount)
			case domain.TenderDebit:
				b.DebitSales = b.DebitSales.Add(tx.Amount)
			}
		case KindSupply:
			b.Supplies = b.Supplies.Add(tx.Amount)
		case KindWithdrawal:
			b.Expenses = b.Expenses.Add(tx.Amount)
		}
	}

	tenderSum := b.CashSales.Add(b.PixSales).Add(b.CreditSales).Add(b.DebitSales)
	b.UncategorizedSales = UncategorizedResidual(b.SystemCalculatedTotal, tenderSum)

	b.ExpectedCash = openingBalance.Add(b.CashSales).Add(b.Supplies).Sub(b.Expenses)
	b.Difference = countedCash.Sub(b.ExpectedCash)
	b.Balanced = IsBalanced(b.Difference)
	return b
}
