// Package margin compares dish cost against sale price and partitions the
// menu into margin records, dishes with no sale price, and dishes whose
// recipes did not fully resolve. Every costed dish lands in exactly one of
// the three buckets.
package margin

import (
	"sort"
	"strings"

	"foodcost/internal/catalog"
	"foodcost/internal/cost"

	"github.com/shopspring/decimal"
)

// DefaultThresholdPercent is the margin below which a dish is flagged.
const DefaultThresholdPercent = 40

// Tier classifies a dish's margin for reporting.
type Tier string

const (
	TierLow    Tier = "low"    // below the alert threshold
	TierMedium Tier = "medium" // threshold up to 60%
	TierHigh   Tier = "high"   // 60% and above
)

// Record is the margin result for one fully resolved, priced dish.
type Record struct {
	Dish   string
	Cost   decimal.Decimal
	Price  decimal.Decimal
	Margin decimal.Decimal // percent of sale price
	Tier   Tier
}

// MissingIngredients names a dish excluded from margin reporting because
// some recipe lines found no catalog price.
type MissingIngredients struct {
	Dish       string
	Unresolved []string
}

// Report partitions every costed dish. Records and Below are sorted
// ascending by margin so the most concerning dishes come first. The three
// buckets are mutually exclusive and together cover every input dish.
type Report struct {
	Records            []Record
	Below              []Record
	MissingPrice       []string
	MissingIngredients []MissingIngredients
	ThresholdPercent   decimal.Decimal
	AverageMargin      decimal.Decimal
}

// Build computes the margin report from per-dish costs and the sale-price
// sheet. thresholdPercent ≤ 0 falls back to DefaultThresholdPercent.
// A sale price of exactly zero yields margin 0 by policy, not an error.
func Build(costs []cost.DishCost, sales *catalog.SaleSheet, thresholdPercent float64) *Report {
	threshold := decimal.NewFromFloat(thresholdPercent)
	if thresholdPercent <= 0 {
		threshold = decimal.NewFromInt(DefaultThresholdPercent)
	}
	report := &Report{ThresholdPercent: threshold}

	hundred := decimal.NewFromInt(100)
	sixty := decimal.NewFromInt(60)

	for _, dishCost := range costs {
		if !dishCost.Resolved() {
			report.MissingIngredients = append(report.MissingIngredients, MissingIngredients{
				Dish:       dishCost.Dish,
				Unresolved: dishCost.Unresolved,
			})
			continue
		}

		price, ok := sales.Lookup(dishCost.Dish)
		if !ok {
			report.MissingPrice = append(report.MissingPrice, dishCost.Dish)
			continue
		}

		var marginPct decimal.Decimal
		if price.IsPositive() {
			marginPct = price.Sub(dishCost.Total).Div(price).Mul(hundred)
		}

		tier := TierHigh
		switch {
		case marginPct.LessThan(threshold):
			tier = TierLow
		case marginPct.LessThan(sixty):
			tier = TierMedium
		}

		report.Records = append(report.Records, Record{
			Dish:   dishCost.Dish,
			Cost:   dishCost.Total,
			Price:  price,
			Margin: marginPct,
			Tier:   tier,
		})
	}

	sortByMargin(report.Records)
	for _, record := range report.Records {
		if record.Tier == TierLow {
			report.Below = append(report.Below, record)
		}
		report.AverageMargin = report.AverageMargin.Add(record.Margin)
	}
	if n := len(report.Records); n > 0 {
		report.AverageMargin = report.AverageMargin.Div(decimal.NewFromInt(int64(n)))
	}

	sort.Slice(report.MissingPrice, func(i, j int) bool {
		return strings.ToLower(report.MissingPrice[i]) < strings.ToLower(report.MissingPrice[j])
	})
	sort.Slice(report.MissingIngredients, func(i, j int) bool {
		return strings.ToLower(report.MissingIngredients[i].Dish) < strings.ToLower(report.MissingIngredients[j].Dish)
	})

	return report
}

func sortByMargin(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Margin.LessThan(records[j].Margin)
	})
}
