package catalog

import "github.com/shopspring/decimal"

// Entry is one priced, named option of a catalog table.
type Entry struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	BasePrice       *decimal.Decimal `json:"base_price,omitempty"`
	RequiresCabling bool             `json:"requires_cabling,omitempty"`
}

// Table is an ordered, read-only set of entries for one configuration axis.
type Table struct {
	name    TableName
	entries []Entry
	index   map[string]int
}

func newTable(name TableName, entries []Entry) Table {
	t := Table{
		name:    name,
		entries: make([]Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	copy(t.entries, entries)
	for i, e := range t.entries {
		t.index[e.ID] = i
	}
	return t
}

// Name returns the table identifier.
func (t Table) Name() TableName {
	return t.name
}

// Lookup returns the entry with the given id. An empty or unknown id reports false.
func (t Table) Lookup(id string) (Entry, bool) {
	if id == "" {
		return Entry{}, false
	}
	i, ok := t.index[id]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Has reports whether id resolves to an entry.
func (t Table) Has(id string) bool {
	_, ok := t.Lookup(id)
	return ok
}

// PriceOf returns the entry price, or zero when id does not resolve.
func (t Table) PriceOf(id string) decimal.Decimal {
	if e, ok := t.Lookup(id); ok {
		return e.Price
	}
	return decimal.Zero
}

// NameOf returns the display name for id, falling back to the raw id.
func (t Table) NameOf(id string) string {
	if e, ok := t.Lookup(id); ok {
		return e.Name
	}
	return id
}

// Entries returns a copy of the table rows in display order.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t Table) Len() int {
	return len(t.entries)
}
