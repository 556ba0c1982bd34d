package catalog

import (
	"sort"
	"strings"

	"foodcost/internal/match"

	"github.com/shopspring/decimal"
)

// SaleSheet maps dishes to their sale price. At most one active price per
// normalized dish name; setting a price overwrites the previous value.
// A dish missing from the sheet is a valid, reportable state.
type SaleSheet struct {
	prices map[string]SalePrice
}

// NewSaleSheet builds a sheet from rows, last write winning per dish.
func NewSaleSheet(rows ...SalePrice) *SaleSheet {
	s := &SaleSheet{prices: make(map[string]SalePrice)}
	for _, row := range rows {
		s.Set(row.Dish, row.Price)
	}
	return s
}

// Set records the sale price for a dish, overwriting any prior value.
func (s *SaleSheet) Set(dish string, price decimal.Decimal) {
	display := strings.TrimSpace(dish)
	key := match.Normalize(display)
	if key == "" {
		return
	}
	s.prices[key] = SalePrice{Dish: display, Price: price}
}

// Lookup returns the sale price for a dish (normalized before lookup).
func (s *SaleSheet) Lookup(dish string) (decimal.Decimal, bool) {
	row, ok := s.prices[match.Normalize(dish)]
	return row.Price, ok
}

// Rows returns all sheet rows sorted by dish name for persistence.
func (s *SaleSheet) Rows() []SalePrice {
	rows := make([]SalePrice, 0, len(s.prices))
	for _, row := range s.prices {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Dish) < strings.ToLower(rows[j].Dish)
	})
	return rows
}

// Len reports the number of priced dishes.
func (s *SaleSheet) Len() int {
	return len(s.prices)
}
