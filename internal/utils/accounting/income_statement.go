package accounting

import (
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// IncomeStatement builds the DRE cascade over rows due within [start, end].
// It is an accrual view: PAID and PENDING rows count alike.
func IncomeStatement(transactions []domain.FinancialTransaction, start, end time.Time) domain.IncomeStatement {
	dre := domain.IncomeStatement{
		PeriodStart:  start,
		PeriodEnd:    end,
		GrossRevenue: decimal.Zero,
		Taxes:        decimal.Zero,
		CMV:          decimal.Zero,
		Labor:        decimal.Zero,
		Utility:      decimal.Zero,
		Service:      decimal.Zero,
		Other:        decimal.Zero,
	}

	for _, tx := range transactions {
		if tx.DueDate.Before(start) || tx.DueDate.After(end) {
			continue
		}
		if tx.Type == domain.Income {
			dre.GrossRevenue = dre.GrossRevenue.Add(tx.Amount)
			continue
		}
		switch tx.Category {
		case domain.CategoryFees:
			dre.Taxes = dre.Taxes.Add(tx.Amount)
		case domain.CategoryInventory:
			dre.CMV = dre.CMV.Add(tx.Amount)
		case domain.CategoryLabor:
			dre.Labor = dre.Labor.Add(tx.Amount)
		case domain.CategoryUtility:
			dre.Utility = dre.Utility.Add(tx.Amount)
		case domain.CategoryService:
			dre.Service = dre.Service.Add(tx.Amount)
		default:
			// OTHER, MAINTENANCE, LEGAL, LOAN
			dre.Other = dre.Other.Add(tx.Amount)
		}
	}

	dre.NetRevenue = dre.GrossRevenue.Sub(dre.Taxes)
	dre.GrossProfit = dre.NetRevenue.Sub(dre.CMV)
	dre.EBITDA = dre.GrossProfit.Sub(dre.Labor).Sub(dre.Utility).Sub(dre.Service).Sub(dre.Other)

	dre.GrossMargin = decimal.Zero
	dre.EBITDAMargin = decimal.Zero
	if dre.GrossRevenue.IsPositive() {
		dre.GrossMargin = dre.GrossProfit.Mul(hundred).Div(dre.GrossRevenue).Round(2)
		dre.EBITDAMargin = dre.EBITDA.Mul(hundred).Div(dre.GrossRevenue).Round(2)
	}
	return dre
}
