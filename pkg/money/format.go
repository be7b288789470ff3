// Package money renders decimal amounts for display and hand-off text.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultSymbol is the peso sign used by the site.
const DefaultSymbol = "$"

// Format renders amount as symbol + comma-grouped integer part + "." + two
// fractional digits, e.g. "$14,100.00". Negative amounts keep the sign before
// the symbol.
func Format(amount decimal.Decimal, symbol string) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.IsNegative() && !amount.Round(2).IsZero() {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	b.WriteString(group(intPart))
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
