package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validTransaction() domain.FinancialTransaction {
	return domain.FinancialTransaction{
		Description: "PDV Venda Dinheiro",
		Amount:      decimal.NewFromInt(50),
		Type:        domain.Income,
		Category:    domain.CategoryOther,
		Status:      domain.StatusPaid,
		DueDate:     time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
	}
}

func TestFinancialTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tx *domain.FinancialTransaction)
		wantErr bool
		errMsg  string
	}{
		{name: "valid transaction", mutate: func(tx *domain.FinancialTransaction) {}},
		{
			name:    "blank description",
			mutate:  func(tx *domain.FinancialTransaction) { tx.Description = "   " },
			wantErr: true,
			errMsg:  "description is required",
		},
		{
			name:    "zero amount",
			mutate:  func(tx *domain.FinancialTransaction) { tx.Amount = decimal.Zero },
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name:    "negative amount",
			mutate:  func(tx *domain.FinancialTransaction) { tx.Amount = decimal.NewFromInt(-3) },
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name:    "unknown category",
			mutate:  func(tx *domain.FinancialTransaction) { tx.Category = "RENT" },
			wantErr: true,
			errMsg:  "invalid category",
		},
		{
			name:    "unknown tender",
			mutate:  func(tx *domain.FinancialTransaction) { tx.Tender = "VOUCHER" },
			wantErr: true,
			errMsg:  "invalid tender",
		},
		{
			name:    "missing due date",
			mutate:  func(tx *domain.FinancialTransaction) { tx.DueDate = time.Time{} },
			wantErr: true,
			errMsg:  "due date is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrValidation))
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestShiftStep_CanTransitionTo(t *testing.T) {
	assert.True(t, domain.ShiftOpen.CanTransitionTo(domain.ShiftActive))
	assert.True(t, domain.ShiftActive.CanTransitionTo(domain.ShiftClosing))
	assert.True(t, domain.ShiftClosing.CanTransitionTo(domain.ShiftActive))
	assert.True(t, domain.ShiftClosing.CanTransitionTo(domain.ShiftClosed))

	assert.False(t, domain.ShiftOpen.CanTransitionTo(domain.ShiftClosing))
	assert.False(t, domain.ShiftActive.CanTransitionTo(domain.ShiftClosed))
	assert.False(t, domain.ShiftClosed.CanTransitionTo(domain.ShiftActive))
	assert.False(t, domain.ShiftHistory.CanTransitionTo(domain.ShiftActive))
}

func TestAuditStatus_Transitions(t *testing.T) {
	assert.True(t, domain.AuditPending.CanTransitionTo(domain.AuditApproved))
	assert.True(t, domain.AuditPending.CanTransitionTo(domain.AuditContested))
	assert.False(t, domain.AuditApproved.CanTransitionTo(domain.AuditContested))
	assert.False(t, domain.AuditContested.CanTransitionTo(domain.AuditApproved))
	assert.False(t, domain.AuditPending.CanTransitionTo(domain.AuditPending))
	assert.True(t, domain.AuditApproved.IsTerminal())
	assert.False(t, domain.AuditPending.IsTerminal())
}

func TestMonthBounds(t *testing.T) {
	first, last := domain.MonthBounds(time.Date(2024, 2, 17, 15, 4, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), last)

	m, err := domain.ParseMonth("2026-11")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), m)

	_, err = domain.ParseMonth("11/2026")
	assert.Error(t, err)
}

func TestPaymentMethod_Fee(t *testing.T) {
	m := domain.PaymentMethod{FeePercentage: decimal.RequireFromString("2.5")}
	assert.True(t, decimal.RequireFromString("2.50").Equal(m.Fee(decimal.NewFromInt(100))))
}
