package reconcile

import (
	"context"
	"errors"
	"testing"

	"foodcost/internal/catalog"
	"foodcost/internal/tabular"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func testStore() *tabular.MemStore {
	prices := catalog.NewPriceBook(
		catalog.IngredientPrice{Name: "Cucumber", PricePerKg: dec("150")},
		catalog.IngredientPrice{Name: "Beef", PricePerKg: dec("800")},
	)
	recipes := catalog.NewRecipeBook(
		catalog.RecipeLine{Dish: "Salad", Ingredient: "Cucumber", WeightGrams: dec("100")},
		catalog.RecipeLine{Dish: "Salad", Ingredient: "Tomato", WeightGrams: dec("50")},
		catalog.RecipeLine{Dish: "Steak", Ingredient: "Beef", WeightGrams: dec("250")},
	)
	sales := catalog.NewSaleSheet(
		catalog.SalePrice{Dish: "Salad", Price: dec("450")},
		catalog.SalePrice{Dish: "Steak", Price: dec("900")},
	)
	return tabular.NewMemStore(prices, recipes, sales)
}

func TestRunProducesReport(t *testing.T) {
	outcome, err := Run(context.Background(), testStore(), Options{})
	require.NoError(t, err)
	require.NotEmpty(t, outcome.RunID)

	// Salad has an unresolved tomato, so only Steak gets a margin.
	require.Len(t, outcome.Report.Records, 1)
	assert.Equal(t, "Steak", outcome.Report.Records[0].Dish)
	// 250g of beef at 800/kg costs 200; margin on 900 is about 77.8%.
	assert.True(t, outcome.Report.Records[0].Cost.Equal(dec("200")))

	require.Len(t, outcome.Report.MissingIngredients, 1)
	assert.Equal(t, "Salad", outcome.Report.MissingIngredients[0].Dish)
	assert.Equal(t, []string{"Tomato"}, outcome.Report.MissingIngredients[0].Unresolved)
}

func TestRunSnapshotsPerCall(t *testing.T) {
	store := testStore()

	first, err := Run(context.Background(), store, Options{})
	require.NoError(t, err)

	// Mutate the store between runs; the next run must see the change.
	prices, _ := store.Prices()
	prices.Upsert(catalog.IngredientPrice{Name: "Tomato", PricePerKg: dec("200")})

	second, err := Run(context.Background(), store, Options{})
	require.NoError(t, err)

	assert.Len(t, first.Report.MissingIngredients, 1)
	assert.Empty(t, second.Report.MissingIngredients)
	assert.Len(t, second.Report.Records, 2)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRunFailsWithoutTables(t *testing.T) {
	fs := tabular.NewFileStore(t.TempDir())

	_, err := Run(context.Background(), fs, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabular.ErrMissingTable), "got %v", err)
}
