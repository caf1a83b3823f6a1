package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func open(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteIncomeStatement(t *testing.T) {
	st := domain.IncomeStatement{
		PeriodStart:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:    time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC),
		GrossRevenue: decimal.NewFromInt(1500),
		EBITDA:       decimal.NewFromInt(710),
	}
	var buf bytes.Buffer
	require.NoError(t, WriteIncomeStatement(&buf, st))

	f := open(t, &buf)
	title, err := f.GetCellValue("DRE", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Demonstrativo de Resultado", title)

	period, _ := f.GetCellValue("DRE", "B2")
	assert.Equal(t, "01/10/2026 a 31/10/2026", period)

	gross, _ := f.GetCellValue("DRE", "B4", excelize.Options{RawCellValue: true})
	assert.Equal(t, "1500", gross)
	ebitda, _ := f.GetCellValue("DRE", "B13", excelize.Options{RawCellValue: true})
	assert.Equal(t, "710", ebitda)
}

func TestWriteCashProjection(t *testing.T) {
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	p := domain.CashProjection{
		StartingBalance: decimal.NewFromInt(100),
		Points: []domain.ProjectionPoint{
			{Date: day, Inflow: decimal.Zero, Outflow: decimal.NewFromInt(150), Balance: decimal.NewFromInt(-50)},
		},
		MinBalance:     decimal.NewFromInt(-50),
		MinBalanceDate: day,
		Status:         domain.ProjectionShortfallRisk,
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCashProjection(&buf, p))

	f := open(t, &buf)
	rows, err := f.GetRows("Projeção")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "SHORTFALL_RISK", rows[1][1])
	assert.Equal(t, "Saldo mínimo -R$ 50,00 em 19/10/2026", rows[1][2])
	assert.Equal(t, []string{"Data", "Entradas", "Saídas", "Saldo"}, rows[3])
	assert.Equal(t, "19/10/2026", rows[4][0])
}

func TestWriteCashAudits(t *testing.T) {
	reviewer := "mgr"
	audits := []domain.CashAudit{
		{Date: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), TerminalID: "T1", Status: domain.AuditApproved, ReviewedBy: &reviewer, Notes: "ok"},
		{Date: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), TerminalID: "T2", Status: domain.AuditPending},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCashAudits(&buf, audits))

	rows, err := open(t, &buf).GetRows("Auditorias")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "T1", rows[1][1])
	assert.Equal(t, "mgr", rows[1][8])
	assert.Equal(t, "PENDING", rows[2][2])
}
