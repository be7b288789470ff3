package quote

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem attributes one price contribution to a named cause.
type LineItem struct {
	Label     string          `json:"label"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Breakdown is the itemized result of one pricing reduction. Each call to
// Compute returns a new value; a Breakdown is never mutated afterwards.
type Breakdown struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
	LineItems []LineItem      `json:"line_items"`
}

// Find returns the first line item whose label starts with prefix.
func (b Breakdown) Find(prefix string) (LineItem, bool) {
	for _, item := range b.LineItems {
		if strings.HasPrefix(item.Label, prefix) {
			return item, true
		}
	}
	return LineItem{}, false
}
