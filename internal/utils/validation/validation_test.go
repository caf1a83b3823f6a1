package validation

import (
	"testing"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Amount   decimal.Decimal `json:"amount" binding:"gt=0"`
	Month    string          `json:"month" binding:"omitempty,month"`
	Day      string          `json:"day" binding:"omitempty,isodate"`
	Category string          `json:"category" binding:"required,category"`
	Tender   string          `json:"tender" binding:"tender"`
}

func TestStructValid(t *testing.T) {
	err := Struct(sample{
		Amount:   decimal.RequireFromString("0.01"),
		Month:    "2026-10",
		Day:      "2026-10-19",
		Category: "UTILITY",
		Tender:   "PIX",
	})
	assert.NoError(t, err)
}

func TestStructInvalid(t *testing.T) {
	err := Struct(sample{
		Amount:   decimal.Zero,
		Month:    "10/2026",
		Day:      "19/10/2026",
		Category: "FOOD",
		Tender:   "CHEQUE",
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "amount: gt=0")
	assert.Contains(t, err.Error(), "month: month")
	assert.Contains(t, err.Error(), "day: isodate")
	assert.Contains(t, err.Error(), "category: category")
	assert.Contains(t, err.Error(), "tender: tender")
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(assert.AnError))
}
