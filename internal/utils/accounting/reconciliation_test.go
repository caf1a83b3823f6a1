package accounting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/SscSPs/pdv_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var today = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func income(desc, amount string) domain.FinancialTransaction {
	return domain.FinancialTransaction{
		Description: desc, Amount: dec(amount), Type: domain.Income,
		Category: domain.CategoryOther, Status: domain.StatusPaid, DueDate: today,
	}
}

func expense(desc, amount string) domain.FinancialTransaction {
	return domain.FinancialTransaction{
		Description: desc, Amount: dec(amount), Type: domain.Expense,
		Category: domain.CategoryOther, Status: domain.StatusPaid, DueDate: today,
	}
}

func assertConserved(t *testing.T, b domain.CashBreakdown) {
	t.Helper()
	sum := b.CashSales.Add(b.PixSales).Add(b.CreditSales).Add(b.DebitSales).Add(b.UncategorizedSales)
	assert.True(t, sum.Equal(b.SystemCalculatedTotal), "tenders %s + residual must equal total %s", sum, b.SystemCalculatedTotal)
	assert.False(t, b.UncategorizedSales.IsNegative())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		tx   domain.FinancialTransaction
		want accounting.Classification
	}{
		{"cash sale", income("PDV Venda Dinheiro", "10"), accounting.Classification{Kind: accounting.KindSale, Tender: domain.TenderCash}},
		{"lowercase tags", income("pdv venda pix", "10"), accounting.Classification{Kind: accounting.KindSale, Tender: domain.TenderPix}},
		{"accented credit", income("PDV Cartão Crédito", "10"), accounting.Classification{Kind: accounting.KindSale, Tender: domain.TenderCredit}},
		{"accented debit", income("PDV Cartão Débito", "10"), accounting.Classification{Kind: accounting.KindSale, Tender: domain.TenderDebit}},
		{"untagged sale", income("PDV Venda Voucher", "10"), accounting.Classification{Kind: accounting.KindSale}},
		{"supply", income("Reforço de caixa: troco", "10"), accounting.Classification{Kind: accounting.KindSupply}},
		{"withdrawal by prefix", expense("CAIXA: Sangria", "10"), accounting.Classification{Kind: accounting.KindWithdrawal}},
		{"withdrawal by legacy tag", expense("sanguia gelo", "10"), accounting.Classification{Kind: accounting.KindWithdrawal}},
		{"pdv expense is not a sale", expense("PDV manutenção", "10"), accounting.Classification{Kind: accounting.KindNone}},
		{"unrelated income", income("Aporte sócio", "10"), accounting.Classification{Kind: accounting.KindNone}},
		{
			"explicit purpose beats description",
			func() domain.FinancialTransaction {
				tx := income("Venda balcão", "10")
				tx.Purpose = domain.PurposeSale
				tx.Tender = domain.TenderDebit
				return tx
			}(),
			accounting.Classification{Kind: accounting.KindSale, Tender: domain.TenderDebit},
		},
		{
			"explicit bill purpose ignores PDV tag",
			func() domain.FinancialTransaction {
				tx := income("PDV licença", "10")
				tx.Purpose = domain.PurposeBill
				return tx
			}(),
			accounting.Classification{Kind: accounting.KindNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.Classify(tt.tx))
		})
	}
}

func TestReconcile_BalancedShift(t *testing.T) {
	txs := []domain.FinancialTransaction{
		income("PDV Venda Dinheiro", "50"),
		income("PDV Venda PIX", "30"),
		expense("CAIXA: Sangria", "20"),
	}

	b := accounting.Reconcile(dec("100"), txs, dec("130"))

	assert.True(t, dec("50").Equal(b.CashSales))
	assert.True(t, dec("30").Equal(b.PixSales))
	assert.True(t, b.CreditSales.IsZero())
	assert.True(t, b.DebitSales.IsZero())
	assert.True(t, b.UncategorizedSales.IsZero())
	assert.True(t, dec("20").Equal(b.Expenses))
	assert.True(t, dec("130").Equal(b.ExpectedCash))
	assert.True(t, b.Difference.IsZero())
	assert.True(t, b.Balanced)
	assertConserved(t, b)
}

func TestReconcile_UncategorizedResidual(t *testing.T) {
	txs := []domain.FinancialTransaction{
		income("PDV Venda Dinheiro", "50"),
		income("PDV Venda PIX", "30"),
		income("PDV Venda Vale Refeição", "10"),
	}

	b := accounting.Reconcile(dec("0"), txs, dec("50"))

	assert.True(t, dec("90").Equal(b.SystemCalculatedTotal))
	assert.True(t, dec("10").Equal(b.UncategorizedSales))
	assertConserved(t, b)
}

func TestReconcile_NoTransactions(t *testing.T) {
	b := accounting.Reconcile(dec("75.50"), nil, dec("75.50"))

	assert.True(t, b.SystemCalculatedTotal.IsZero())
	assert.True(t, b.Supplies.IsZero())
	assert.True(t, b.Expenses.IsZero())
	assert.True(t, dec("75.50").Equal(b.ExpectedCash))
	assert.True(t, b.Balanced)
}

func TestReconcile_SuppliesAndShortage(t *testing.T) {
	txs := []domain.FinancialTransaction{
		income("PDV Dinheiro", "40"),
		income("Reforço de caixa: moedas", "25"),
		expense("CAIXA: gás", "5"),
		income("PDV Crédito", "100"),
	}

	b := accounting.Reconcile(dec("100"), txs, dec("155"))

	// 100 + 40 + 25 - 5
	assert.True(t, dec("160").Equal(b.ExpectedCash))
	assert.True(t, dec("-5").Equal(b.Difference))
	assert.False(t, b.Balanced)
	assertConserved(t, b)
}

func TestReconcile_ToleranceBoundary(t *testing.T) {
	txs := []domain.FinancialTransaction{income("PDV Dinheiro", "10")}

	assert.True(t, accounting.Reconcile(dec("0"), txs, dec("10.009")).Balanced)
	assert.False(t, accounting.Reconcile(dec("0"), txs, dec("10.01")).Balanced)
	assert.False(t, accounting.Reconcile(dec("0"), txs, dec("9.99")).Balanced)
}

func TestReconcile_IsDeterministic(t *testing.T) {
	txs := []domain.FinancialTransaction{
		income("PDV Dinheiro", "12.34"),
		income("Reforço", "5"),
		expense("SANGUIA", "1.11"),
	}
	first := accounting.Reconcile(dec("20"), txs, dec("36"))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, accounting.Reconcile(dec("20"), txs, dec("36")))
	}
}

func TestReconcile_ConservationAcrossMixes(t *testing.T) {
	descriptions := []string{"PDV Dinheiro", "PDV PIX", "PDV Crédito", "PDV Débito", "PDV Ticket", "PDV", "PDV CASH PIX"}
	var txs []domain.FinancialTransaction
	for i, d := range descriptions {
		txs = append(txs, income(d, decimal.NewFromInt(int64(i+1)).String()))
		assertConserved(t, accounting.Reconcile(decimal.Zero, txs, decimal.Zero))
	}
}

func TestUncategorizedResidual_ClampsOvermatch(t *testing.T) {
	assert.True(t, accounting.UncategorizedResidual(dec("80"), dec("95")).IsZero())
	assert.True(t, dec("5").Equal(accounting.UncategorizedResidual(dec("85"), dec("80"))))
}
