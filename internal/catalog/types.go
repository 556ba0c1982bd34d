// Package catalog holds the three tabular datasets the engine reconciles:
// the ingredient price catalog, the recipe book, and the sale-price sheet.
// All records are plain in-memory values; loading and persisting them is a
// collaborator's job (see internal/tabular). Money and weights use decimals
// so repeated aggregation does not drift.
package catalog

import "github.com/shopspring/decimal"

// IngredientPrice is one price catalog row: an ingredient and its unit
// price per kilogram. Rows are keyed by normalized name; writing a row
// whose name normalizes to an existing key overwrites it.
type IngredientPrice struct {
	Name       string
	PricePerKg decimal.Decimal
}

// RecipeLine is one row of a dish's recipe: an ingredient reference and
// its weight in grams for a single portion. A dish owns many lines.
type RecipeLine struct {
	Dish        string
	Ingredient  string
	WeightGrams decimal.Decimal
}

// SalePrice is one sale-price sheet row. A dish may have no row at all;
// that is a reportable state, not an error.
type SalePrice struct {
	Dish  string
	Price decimal.Decimal
}
