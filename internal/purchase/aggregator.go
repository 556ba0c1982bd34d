// Package purchase turns a list of (dish, portions) pairs into a shopping
// list: recipe lines are expanded per portion count, ingredient references
// resolve through the matcher, and weights accumulate per matched catalog
// ingredient across every requested dish.
package purchase

import (
	"fmt"
	"sort"

	"foodcost/internal/catalog"
	"foodcost/internal/match"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Item is one requested dish with its portion count.
type Item struct {
	Dish     string
	Portions int
}

// Request is an ordered list of items. Dishes may repeat; repeated entries
// accumulate into the same totals.
type Request []Item

// Entry is one aggregated shopping-list row: the matched catalog
// ingredient, the total weight across the whole request rounded to the
// gram, and what that weight costs at the catalog unit price.
type Entry struct {
	Name        string
	WeightGrams decimal.Decimal
	Cost        decimal.Decimal
}

// Result is the aggregated shopping list. Entries appear in first-seen
// traversal order. Missing holds recipe ingredients that found no catalog
// match, deduplicated and sorted; when non-empty the totals cover only the
// resolvable part of the request.
type Result struct {
	Entries []Entry
	Missing []string
	Total   decimal.Decimal
}

// Complete reports whether every ingredient in the request resolved.
func (r *Result) Complete() bool {
	return len(r.Missing) == 0
}

// MissingDishError fails a request naming a dish with no recipe. The whole
// request fails: a purchase list for half the menu is worse than no list.
type MissingDishError struct {
	Dish string
}

func (e *MissingDishError) Error() string {
	return fmt.Sprintf("dish %q has no recipe", e.Dish)
}

// InvalidPortionsError rejects a non-positive portion count.
type InvalidPortionsError struct {
	Dish     string
	Portions int
}

func (e *InvalidPortionsError) Error() string {
	return fmt.Sprintf("dish %q: portions must be positive, got %d", e.Dish, e.Portions)
}

// Aggregator expands and prices purchase requests.
type Aggregator struct {
	matcher   *match.Matcher
	threshold float64
}

// NewAggregator returns an Aggregator. A zero threshold falls back to the
// matcher's default.
func NewAggregator(matcher *match.Matcher, threshold float64) *Aggregator {
	if threshold <= 0 {
		threshold = match.DefaultThreshold
	}
	return &Aggregator{matcher: matcher, threshold: threshold}
}

// Aggregate expands every requested dish and sums ingredient weights per
// matched catalog entry. Dish names must match a known recipe exactly
// after normalization; any unknown dish fails the whole request. Per-entry
// weights are rounded to the nearest gram and the overall total to the
// nearest currency unit.
func (a *Aggregator) Aggregate(req Request, recipes *catalog.RecipeBook, prices *catalog.PriceBook) (*Result, error) {
	type running struct {
		weight decimal.Decimal
		price  decimal.Decimal
	}

	var order []string
	totals := make(map[string]*running)
	var missing []string

	candidates := prices.Names()
	for _, item := range req {
		if item.Portions <= 0 {
			return nil, &InvalidPortionsError{Dish: item.Dish, Portions: item.Portions}
		}
		lines, ok := recipes.LinesFor(item.Dish)
		if !ok {
			return nil, &MissingDishError{Dish: item.Dish}
		}

		portions := decimal.NewFromInt(int64(item.Portions))
		for _, line := range lines {
			resolved := a.matcher.Match(line.Ingredient, candidates, a.threshold)
			if !resolved.Found() {
				missing = append(missing, line.Ingredient)
				continue
			}
			pricePerKg, ok := prices.Price(resolved.Matched)
			if !ok {
				missing = append(missing, line.Ingredient)
				continue
			}

			key := match.Normalize(resolved.Matched)
			entry, seen := totals[key]
			if !seen {
				entry = &running{price: pricePerKg}
				totals[key] = entry
				order = append(order, resolved.Matched)
			}
			entry.weight = entry.weight.Add(line.WeightGrams.Mul(portions))
		}
	}

	// Dedup by normalized name so casing variants collapse; the
	// first-seen spelling is the one reported.
	result := &Result{
		Missing: lo.UniqBy(missing, match.Normalize),
	}
	sort.Strings(result.Missing)

	thousand := decimal.NewFromInt(1000)
	for _, name := range order {
		entry := totals[match.Normalize(name)]
		grams := entry.weight.Round(0)
		cost := grams.Div(thousand).Mul(entry.price)
		result.Entries = append(result.Entries, Entry{
			Name:        name,
			WeightGrams: grams,
			Cost:        cost,
		})
		result.Total = result.Total.Add(cost)
	}
	result.Total = result.Total.Round(0)

	return result, nil
}
