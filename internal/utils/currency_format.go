package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders amount as Brazilian reais, grouping thousands with dots
// and using a comma as decimal separator.
// Example: 1234.5 returns "R$ 1.234,50"; -10 returns "-R$ 10,00"
func FormatBRL(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.Round(2).IsNegative() {
		b.WriteString("-")
	}
	b.WriteString("R$ ")
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}
