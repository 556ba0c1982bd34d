// Package cost prices a dish from its recipe lines and the ingredient
// price catalog. Each line's ingredient reference is resolved through the
// name matcher; lines that fail to resolve are reported, not guessed at.
package cost

import (
	"foodcost/internal/catalog"
	"foodcost/internal/match"

	"github.com/shopspring/decimal"
)

// LineMatch records how one recipe line resolved against the catalog,
// kept for diagnostics so a reviewer can see why a cost came out the way
// it did.
type LineMatch struct {
	Ingredient string
	Matched    string
	Confidence float64
}

// DishCost is the priced result for one dish. Total covers only resolved
// lines; when Unresolved is non-empty the total is partial and the dish
// must not be given a margin.
type DishCost struct {
	Dish       string
	Total      decimal.Decimal
	Unresolved []string
	Matches    []LineMatch
}

// Resolved reports whether every recipe line found a catalog price.
func (c DishCost) Resolved() bool {
	return len(c.Unresolved) == 0
}

// Calculator prices dishes using a matcher and an acceptance threshold.
type Calculator struct {
	matcher   *match.Matcher
	threshold float64
}

// NewCalculator returns a Calculator. A zero threshold falls back to the
// matcher's default.
func NewCalculator(matcher *match.Matcher, threshold float64) *Calculator {
	if threshold <= 0 {
		threshold = match.DefaultThreshold
	}
	return &Calculator{matcher: matcher, threshold: threshold}
}

// CostOf prices one dish. For each line the ingredient is resolved against
// the catalog; resolved lines contribute weight × price/kg ÷ 1000, lines
// with no catalog match land in Unresolved and are excluded from the total.
func (c *Calculator) CostOf(dish string, lines []catalog.RecipeLine, prices *catalog.PriceBook) DishCost {
	result := DishCost{Dish: dish}
	candidates := prices.Names()
	thousand := decimal.NewFromInt(1000)

	for _, line := range lines {
		resolved := c.matcher.Match(line.Ingredient, candidates, c.threshold)
		if !resolved.Found() {
			result.Unresolved = append(result.Unresolved, line.Ingredient)
			continue
		}
		pricePerKg, ok := prices.Price(resolved.Matched)
		if !ok {
			// Matched a candidate name the book no longer carries; treat
			// the same as no match.
			result.Unresolved = append(result.Unresolved, line.Ingredient)
			continue
		}
		result.Total = result.Total.Add(line.WeightGrams.Mul(pricePerKg).Div(thousand))
		result.Matches = append(result.Matches, LineMatch{
			Ingredient: line.Ingredient,
			Matched:    resolved.Matched,
			Confidence: resolved.Confidence,
		})
	}
	return result
}
