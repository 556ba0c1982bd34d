package tabular

import "foodcost/internal/catalog"

// MemStore holds the three tables in process memory. It backs tests and
// callers that already hold records and only need the Source/Writer shape.
type MemStore struct {
	prices  *catalog.PriceBook
	recipes *catalog.RecipeBook
	sales   *catalog.SaleSheet
}

var _ Store = (*MemStore)(nil)

// NewMemStore returns a store over the given books. Nil books become empty
// ones.
func NewMemStore(prices *catalog.PriceBook, recipes *catalog.RecipeBook, sales *catalog.SaleSheet) *MemStore {
	if prices == nil {
		prices = catalog.NewPriceBook()
	}
	if recipes == nil {
		recipes = catalog.NewRecipeBook()
	}
	if sales == nil {
		sales = catalog.NewSaleSheet()
	}
	return &MemStore{prices: prices, recipes: recipes, sales: sales}
}

func (m *MemStore) Prices() (*catalog.PriceBook, error)   { return m.prices, nil }
func (m *MemStore) Recipes() (*catalog.RecipeBook, error) { return m.recipes, nil }
func (m *MemStore) Sales() (*catalog.SaleSheet, error)    { return m.sales, nil }

func (m *MemStore) WritePrices(book *catalog.PriceBook) error {
	m.prices = book
	return nil
}

func (m *MemStore) WriteRecipes(book *catalog.RecipeBook) error {
	m.recipes = book
	return nil
}

func (m *MemStore) WriteSales(sheet *catalog.SaleSheet) error {
	m.sales = sheet
	return nil
}
