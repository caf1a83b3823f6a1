package accounting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/SscSPs/pdv_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(typ domain.TransactionType, cat domain.TransactionCategory, status domain.TransactionStatus, amount string, due time.Time) domain.FinancialTransaction {
	return domain.FinancialTransaction{
		Description: "row", Amount: dec(amount), Type: typ, Category: cat, Status: status, DueDate: due,
	}
}

func TestIncomeStatement_Cascade(t *testing.T) {
	first, last := domain.MonthBounds(today)
	txs := []domain.FinancialTransaction{
		tx(domain.Income, domain.CategoryOther, domain.StatusPaid, "1000", first),
		tx(domain.Income, domain.CategoryOther, domain.StatusPending, "500", last),
		tx(domain.Expense, domain.CategoryFees, domain.StatusPaid, "100", today),
		tx(domain.Expense, domain.CategoryInventory, domain.StatusPending, "300", today),
		tx(domain.Expense, domain.CategoryLabor, domain.StatusPaid, "200", today),
		tx(domain.Expense, domain.CategoryUtility, domain.StatusPaid, "50", today),
		tx(domain.Expense, domain.CategoryService, domain.StatusPaid, "40", today),
		tx(domain.Expense, domain.CategoryMaintenance, domain.StatusPaid, "10", today),
		tx(domain.Expense, domain.CategoryLegal, domain.StatusPaid, "20", today),
		tx(domain.Expense, domain.CategoryLoan, domain.StatusPaid, "30", today),
		tx(domain.Expense, domain.CategoryOther, domain.StatusPaid, "40", today),
		// outside the month
		tx(domain.Income, domain.CategoryOther, domain.StatusPaid, "9999", first.AddDate(0, 0, -1)),
		tx(domain.Expense, domain.CategoryFees, domain.StatusPaid, "9999", last.AddDate(0, 0, 1)),
	}

	dre := accounting.IncomeStatement(txs, first, last)

	assert.True(t, dec("1500").Equal(dre.GrossRevenue))
	assert.True(t, dec("100").Equal(dre.Taxes))
	assert.True(t, dec("1400").Equal(dre.NetRevenue))
	assert.True(t, dec("300").Equal(dre.CMV))
	assert.True(t, dec("1100").Equal(dre.GrossProfit))
	assert.True(t, dec("200").Equal(dre.Labor))
	assert.True(t, dec("50").Equal(dre.Utility))
	assert.True(t, dec("40").Equal(dre.Service))
	assert.True(t, dec("100").Equal(dre.Other))
	assert.True(t, dec("710").Equal(dre.EBITDA))
	assert.True(t, dec("73.33").Equal(dre.GrossMargin))
	assert.True(t, dec("47.33").Equal(dre.EBITDAMargin))
}

func TestIncomeStatement_NoRevenue(t *testing.T) {
	first, last := domain.MonthBounds(today)
	dre := accounting.IncomeStatement([]domain.FinancialTransaction{
		tx(domain.Expense, domain.CategoryUtility, domain.StatusPaid, "80", today),
	}, first, last)

	assert.True(t, dec("-80").Equal(dre.EBITDA))
	assert.True(t, dre.GrossMargin.IsZero())
	assert.True(t, dre.EBITDAMargin.IsZero())
}

func TestProject_ShortfallExample(t *testing.T) {
	from := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	day := func(n int) time.Time { return from.AddDate(0, 0, n-1) }
	txs := []domain.FinancialTransaction{
		tx(domain.Income, domain.CategoryOther, domain.StatusPaid, "250", from.AddDate(0, -1, 0)),
		tx(domain.Expense, domain.CategoryOther, domain.StatusPaid, "50", from.AddDate(0, -1, 0)),
		tx(domain.Income, domain.CategoryOther, domain.StatusPending, "500", day(10)),
		tx(domain.Expense, domain.CategoryUtility, domain.StatusPending, "800", day(20)),
	}

	p := accounting.Project(txs, from, 30)

	require.Len(t, p.Points, 30)
	assert.True(t, dec("200").Equal(p.StartingBalance))
	for i := 0; i < 9; i++ {
		assert.True(t, dec("200").Equal(p.Points[i].Balance), "day %d", i+1)
	}
	assert.True(t, dec("700").Equal(p.Points[9].Balance))
	assert.True(t, dec("-100").Equal(p.Points[19].Balance))
	assert.True(t, dec("-100").Equal(p.MinBalance))
	assert.Equal(t, day(20), p.MinBalanceDate)
	assert.Equal(t, domain.ProjectionShortfallRisk, p.Status)
}

func TestProject_DeltasSumToEndBalance(t *testing.T) {
	from := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	txs := []domain.FinancialTransaction{
		tx(domain.Income, domain.CategoryOther, domain.StatusPaid, "1000", from.AddDate(0, 0, -3)),
		tx(domain.Income, domain.CategoryOther, domain.StatusPending, "120.50", from),
		tx(domain.Income, domain.CategoryOther, domain.StatusPending, "80", from.AddDate(0, 0, 29)),
		tx(domain.Expense, domain.CategoryLabor, domain.StatusPending, "300", from.AddDate(0, 0, 7)),
		tx(domain.Expense, domain.CategoryLabor, domain.StatusPending, "45.25", from.AddDate(0, 0, 7)),
		// outside the window on both sides
		tx(domain.Expense, domain.CategoryLabor, domain.StatusPending, "999", from.AddDate(0, 0, -1)),
		tx(domain.Income, domain.CategoryOther, domain.StatusPending, "999", from.AddDate(0, 0, 30)),
	}

	p := accounting.Project(txs, from, 30)

	net := decimal.Zero
	for _, pt := range p.Points {
		net = net.Add(pt.Inflow).Sub(pt.Outflow)
	}
	assert.True(t, dec("-144.75").Equal(net))
	assert.True(t, p.StartingBalance.Add(net).Equal(p.Points[29].Balance))
	assert.Equal(t, domain.ProjectionHealthy, p.Status)
}

func TestProject_FlatSeriesMinIsFirstDay(t *testing.T) {
	from := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	p := accounting.Project(nil, from, 0)

	assert.Len(t, p.Points, accounting.DefaultProjectionDays)
	assert.True(t, p.MinBalance.IsZero())
	assert.Equal(t, from, p.MinBalanceDate)
	assert.Equal(t, domain.ProjectionHealthy, p.Status)
}

func TestSettlementSchedule(t *testing.T) {
	from, to := today.AddDate(0, 0, -1), today
	pix := income("PDV PIX", "100")
	pix.ID = "t-pix"
	credit := income("PDV Crédito Stone", "200")
	credit.ID = "t-credit"
	voucher := income("PDV Voucher", "15")
	voucher.ID = "t-voucher"
	cash := income("PDV Dinheiro", "50")
	cash.ID = "t-cash"
	old := income("PDV PIX", "70")
	old.ID = "t-old"
	old.DueDate = today.AddDate(0, 0, -10)

	methods := []domain.PaymentMethod{
		{ID: "m-pix", Name: "Pix", Tender: domain.TenderPix, FeePercentage: dec("0.99"), SettlementDays: 0, Active: true},
		{ID: "m-stone", Name: "Stone", FeePercentage: dec("3"), SettlementDays: 30, Active: true},
		{ID: "m-off", Name: "Voucher", FeePercentage: dec("5"), SettlementDays: 2, Active: false},
	}

	s := accounting.SettlementSchedule([]domain.FinancialTransaction{pix, credit, voucher, cash, old}, methods, from, to)

	require.Len(t, s.Entries, 2)
	assert.Equal(t, "m-pix", s.Entries[0].PaymentMethodID)
	assert.True(t, dec("0.99").Equal(s.Entries[0].Fee))
	assert.Equal(t, today, s.Entries[0].SettlementDate)
	assert.Equal(t, "m-stone", s.Entries[1].PaymentMethodID)
	assert.True(t, dec("194").Equal(s.Entries[1].Net))
	assert.Equal(t, today.AddDate(0, 0, 30), s.Entries[1].SettlementDate)
	assert.Equal(t, []string{"t-voucher"}, s.Unmatched)
	assert.True(t, dec("300").Equal(s.TotalGross))
	assert.True(t, dec("6.99").Equal(s.TotalFee))
	assert.True(t, dec("293.01").Equal(s.TotalNet))
}

func TestMaterializeBills(t *testing.T) {
	month := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	bills := []domain.RecurringBill{
		{ID: "rent", Title: "Aluguel", Amount: dec("2000"), DayOfMonth: 5, Category: domain.CategoryOther, Active: true},
		{ID: "power", Title: "Energia", Amount: dec("350"), DayOfMonth: 31, Category: domain.CategoryUtility, Active: true},
		{ID: "paused", Title: "Internet", Amount: dec("120"), DayOfMonth: 10, Category: domain.CategoryUtility, Active: false},
	}

	created := accounting.MaterializeBills(bills, month, nil, "manager", now)

	require.Len(t, created, 2)
	rent := created[0]
	assert.Equal(t, "Aluguel", rent.Description)
	assert.Equal(t, domain.Expense, rent.Type)
	assert.Equal(t, domain.StatusPending, rent.Status)
	assert.Equal(t, domain.PurposeBill, rent.Purpose)
	assert.True(t, dec("2000").Equal(rent.Amount))
	assert.Equal(t, time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), rent.DueDate)
	require.NotNil(t, rent.RecurringBillID)
	assert.Equal(t, "rent", *rent.RecurringBillID)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), created[1].DueDate)

	again := accounting.MaterializeBills(bills, month, created, "manager", now)
	assert.Empty(t, again)

	nextMonth := accounting.MaterializeBills(bills, month.AddDate(0, 1, 0), created, "manager", now)
	assert.Len(t, nextMonth, 2)
}
