package catalog

import (
	"foodcost/internal/match"

	"github.com/shopspring/decimal"
)

// PriceBook is the ingredient price catalog. Entries keep their first-seen
// order so that name matching scans candidates deterministically; identity
// is the normalized name, so re-adding "Soy  Sauce" overwrites "soy sauce"
// in place rather than appending a duplicate.
type PriceBook struct {
	entries []IngredientPrice
	index   map[string]int
}

// NewPriceBook builds a book from rows in order, merging rows whose names
// normalize to the same key (last write wins).
func NewPriceBook(rows ...IngredientPrice) *PriceBook {
	b := &PriceBook{index: make(map[string]int)}
	for _, row := range rows {
		b.Upsert(row)
	}
	return b
}

// Upsert inserts or overwrites the row keyed by its normalized name.
// Rows whose names normalize to "" are ignored.
func (b *PriceBook) Upsert(row IngredientPrice) {
	key := match.Normalize(row.Name)
	if key == "" {
		return
	}
	if i, ok := b.index[key]; ok {
		b.entries[i] = row
		return
	}
	b.index[key] = len(b.entries)
	b.entries = append(b.entries, row)
}

// Delete removes the row keyed by name's normalized form and reports
// whether anything was removed.
func (b *PriceBook) Delete(name string) bool {
	key := match.Normalize(name)
	i, ok := b.index[key]
	if !ok {
		return false
	}
	b.entries = append(b.entries[:i], b.entries[i+1:]...)
	delete(b.index, key)
	for k, j := range b.index {
		if j > i {
			b.index[k] = j - 1
		}
	}
	return true
}

// Names returns the catalog names in entry order. This is the candidate
// list handed to the matcher; its order is part of the matching contract.
func (b *PriceBook) Names() []string {
	names := make([]string, len(b.entries))
	for i, entry := range b.entries {
		names[i] = entry.Name
	}
	return names
}

// Price looks up the unit price for a name (normalized before lookup).
func (b *PriceBook) Price(name string) (decimal.Decimal, bool) {
	i, ok := b.index[match.Normalize(name)]
	if !ok {
		return decimal.Decimal{}, false
	}
	return b.entries[i].PricePerKg, true
}

// Rows returns a copy of all entries in order, for persistence.
func (b *PriceBook) Rows() []IngredientPrice {
	rows := make([]IngredientPrice, len(b.entries))
	copy(rows, b.entries)
	return rows
}

// Len reports the number of catalog entries.
func (b *PriceBook) Len() int {
	return len(b.entries)
}
