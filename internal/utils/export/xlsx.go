// Package export renders reports as xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/SscSPs/pdv_backoffice/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the produced workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const dateLayout = "02/01/2006"

// sheet wraps one worksheet with a moneyed number style and a row cursor.
type sheet struct {
	f     *excelize.File
	name  string
	money int
	bold  int
	row   int
}

func newWorkbook(sheetName string) (*sheet, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: ptr("#,##0.00")})
	if err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	return &sheet{f: f, name: sheetName, money: money, bold: bold}, nil
}

func ptr[T any](v T) *T { return &v }

// append writes values on the next row. decimals are stored as numbers with
// the money style; times as dd/mm/yyyy text.
func (s *sheet) append(values ...any) error {
	s.row++
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, s.row)
		if err != nil {
			return err
		}
		switch val := v.(type) {
		case decimal.Decimal:
			if err := s.f.SetCellFloat(s.name, cell, val.InexactFloat64(), -1, 64); err != nil {
				return err
			}
			if err := s.f.SetCellStyle(s.name, cell, cell, s.money); err != nil {
				return err
			}
		case time.Time:
			if err := s.f.SetCellValue(s.name, cell, val.Format(dateLayout)); err != nil {
				return err
			}
		default:
			if err := s.f.SetCellValue(s.name, cell, val); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *sheet) header(titles ...string) error {
	values := make([]any, len(titles))
	for i, t := range titles {
		values[i] = t
	}
	if err := s.append(values...); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(titles), s.row)
	if err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, s.row)
	return s.f.SetCellStyle(s.name, first, last, s.bold)
}

func (s *sheet) writeTo(w io.Writer) error {
	defer s.f.Close()
	if err := s.f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteIncomeStatement renders the DRE cascade.
func WriteIncomeStatement(w io.Writer, st domain.IncomeStatement) error {
	s, err := newWorkbook("DRE")
	if err != nil {
		return err
	}
	rows := [][]any{
		{"Período", fmt.Sprintf("%s a %s", st.PeriodStart.Format(dateLayout), st.PeriodEnd.Format(dateLayout))},
		{},
		{"Receita Bruta", st.GrossRevenue},
		{"(-) Impostos e Taxas", st.Taxes},
		{"= Receita Líquida", st.NetRevenue},
		{"(-) CMV", st.CMV},
		{"= Lucro Bruto", st.GrossProfit},
		{"(-) Pessoal", st.Labor},
		{"(-) Utilidades", st.Utility},
		{"(-) Serviços", st.Service},
		{"(-) Outras Despesas", st.Other},
		{"= EBITDA", st.EBITDA},
		{},
		{"Margem Bruta (%)", st.GrossMargin},
		{"Margem EBITDA (%)", st.EBITDAMargin},
	}
	if err := s.header("Demonstrativo de Resultado", ""); err != nil {
		return err
	}
	for _, r := range rows {
		if err := s.append(r...); err != nil {
			return err
		}
	}
	return s.writeTo(w)
}

// WriteCashProjection renders the day-by-day projection and its summary.
func WriteCashProjection(w io.Writer, p domain.CashProjection) error {
	s, err := newWorkbook("Projeção")
	if err != nil {
		return err
	}
	if err := s.append("Saldo inicial", p.StartingBalance); err != nil {
		return err
	}
	summary := fmt.Sprintf("Saldo mínimo %s em %s", utils.FormatBRL(p.MinBalance), p.MinBalanceDate.Format(dateLayout))
	if err := s.append("Situação", string(p.Status), summary); err != nil {
		return err
	}
	s.row++
	if err := s.header("Data", "Entradas", "Saídas", "Saldo"); err != nil {
		return err
	}
	for _, pt := range p.Points {
		if err := s.append(pt.Date, pt.Inflow, pt.Outflow, pt.Balance); err != nil {
			return err
		}
	}
	return s.writeTo(w)
}

// WriteCashAudits renders an audit history listing.
func WriteCashAudits(w io.Writer, audits []domain.CashAudit) error {
	s, err := newWorkbook("Auditorias")
	if err != nil {
		return err
	}
	if err := s.header("Data", "Terminal", "Status", "Fundo", "Esperado", "Contado", "Diferença", "Operador", "Revisor", "Observações"); err != nil {
		return err
	}
	for _, a := range audits {
		reviewer := ""
		if a.ReviewedBy != nil {
			reviewer = *a.ReviewedBy
		}
		if err := s.append(a.Date, a.TerminalID, string(a.Status), a.OpeningBalance, a.ExpectedCash,
			a.CountedCash, a.DifferenceValue, a.AuditedBy, reviewer, a.Notes); err != nil {
			return err
		}
	}
	return s.writeTo(w)
}
