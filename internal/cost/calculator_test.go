package cost

import (
	"testing"

	"foodcost/internal/catalog"
	"foodcost/internal/match"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestCostOfPartialResolution(t *testing.T) {
	prices := catalog.NewPriceBook(
		catalog.IngredientPrice{Name: "Cucumber", PricePerKg: dec("150")},
	)
	lines := []catalog.RecipeLine{
		{Dish: "Salad", Ingredient: "Cucumber", WeightGrams: dec("100")},
		{Dish: "Salad", Ingredient: "Tomato", WeightGrams: dec("50")},
	}

	calc := NewCalculator(match.NewMatcher(nil), 0)
	got := calc.CostOf("Salad", lines, prices)

	// 100g at 150/kg is 15; the unresolved tomato contributes nothing.
	assert.True(t, got.Total.Equal(dec("15")), "total = %v", got.Total)
	assert.Equal(t, []string{"Tomato"}, got.Unresolved)
	assert.False(t, got.Resolved())

	require.Len(t, got.Matches, 1)
	assert.Equal(t, "Cucumber", got.Matches[0].Matched)
	assert.Equal(t, match.ExactConfidence, got.Matches[0].Confidence)
}

func TestCostOfFullyResolvedViaTiers(t *testing.T) {
	prices := catalog.NewPriceBook(
		catalog.IngredientPrice{Name: "Tomatoes", PricePerKg: dec("200")},
		catalog.IngredientPrice{Name: "Olive oil extra virgin", PricePerKg: dec("1200")},
	)
	lines := []catalog.RecipeLine{
		{Dish: "Bruschetta", Ingredient: "tomato", WeightGrams: dec("120")},
		{Dish: "Bruschetta", Ingredient: "olive oil", WeightGrams: dec("10")},
	}

	calc := NewCalculator(match.NewMatcher(match.DefaultSynonyms()), match.DefaultThreshold)
	got := calc.CostOf("Bruschetta", lines, prices)

	require.True(t, got.Resolved(), "unresolved: %v", got.Unresolved)
	// 120g of tomatoes at 200/kg = 24, 10g of oil at 1200/kg = 12.
	assert.True(t, got.Total.Equal(dec("36")), "total = %v", got.Total)

	require.Len(t, got.Matches, 2)
	assert.Equal(t, match.SynonymConfidence, got.Matches[0].Confidence)
	assert.Equal(t, match.ContainsConfidence, got.Matches[1].Confidence)
}

func TestCostOfEmptyRecipe(t *testing.T) {
	calc := NewCalculator(match.NewMatcher(nil), 0)
	got := calc.CostOf("Water", nil, catalog.NewPriceBook())

	assert.True(t, got.Resolved())
	assert.True(t, got.Total.IsZero())
}
