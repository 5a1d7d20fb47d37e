package period

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatMoney renders an amount as "<CODE> 1,234.56".
func FormatMoney(currency string, amount decimal.Decimal) string {
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	whole := amount.Truncate(0)
	cents := amount.Sub(whole).Shift(2).IntPart()

	return fmt.Sprintf("%s %s%s.%02d", currency, sign, humanize.Comma(whole.IntPart()), cents)
}

// round2 converts a decimal to a float64 rounded to two places for presentation.
func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
