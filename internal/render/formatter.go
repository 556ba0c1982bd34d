// Package render turns the engine's structured results into plain text
// for terminals and chat surfaces. The engine itself never formats; every
// function here is a pure view over result structs.
package render

import (
	"fmt"
	"strings"

	"foodcost/internal/margin"
	"foodcost/internal/match"
	"foodcost/internal/purchase"
	"foodcost/internal/reconcile"
)

const (
	maxNoPriceListed  = 10
	maxMissingDishes  = 5
	maxMissingPerDish = 3
)

// MarginReport renders the full margin report: the low-margin alert block
// first, then the tier groupings, summary statistics, and the two
// exclusion lists with truncation for long tails.
func MarginReport(outcome *reconcile.Outcome) string {
	var out strings.Builder
	report := outcome.Report

	out.WriteString("MARGIN AND FOOD COST REPORT\n")
	out.WriteString(strings.Repeat("=", 30) + "\n\n")

	if len(report.Below) > 0 {
		fmt.Fprintf(&out, "ATTENTION: dishes with margin below %s%%:\n\n", report.ThresholdPercent.StringFixed(0))
		for _, record := range report.Below {
			fmt.Fprintf(&out, "! %s\n", record.Dish)
			fmt.Fprintf(&out, "    cost:       %s\n", record.Cost.StringFixed(2))
			fmt.Fprintf(&out, "    sale price: %s\n", record.Price.StringFixed(2))
			fmt.Fprintf(&out, "    margin:     %s%%\n\n", record.Margin.StringFixed(1))
		}
		out.WriteString(strings.Repeat("-", 30) + "\n\n")
	}

	if len(report.Records) > 0 {
		out.WriteString("ALL DISHES:\n\n")
		writeTier(&out, report, margin.TierHigh, "High margin (>=60%)")
		writeTier(&out, report, margin.TierMedium, fmt.Sprintf("Medium margin (%s-60%%)", report.ThresholdPercent.StringFixed(0)))

		out.WriteString("SUMMARY:\n")
		fmt.Fprintf(&out, "  dishes costed:     %d\n", len(report.Records))
		fmt.Fprintf(&out, "  average margin:    %s%%\n", report.AverageMargin.StringFixed(1))
		fmt.Fprintf(&out, "  low-margin dishes: %d\n", len(report.Below))
	}

	if len(report.MissingPrice) > 0 {
		out.WriteString("\nDishes without a sale price:\n")
		for i, dish := range report.MissingPrice {
			if i == maxNoPriceListed {
				fmt.Fprintf(&out, "  (and %d more)\n", len(report.MissingPrice)-maxNoPriceListed)
				break
			}
			fmt.Fprintf(&out, "  - %s\n", dish)
		}
	}

	if len(report.MissingIngredients) > 0 {
		out.WriteString("\nDishes with ingredients missing from the catalog:\n")
		for i, entry := range report.MissingIngredients {
			if i == maxMissingDishes {
				fmt.Fprintf(&out, "  (and %d more dishes)\n", len(report.MissingIngredients)-maxMissingDishes)
				break
			}
			fmt.Fprintf(&out, "  %s:\n", entry.Dish)
			for j, ingredient := range entry.Unresolved {
				if j == maxMissingPerDish {
					fmt.Fprintf(&out, "    (and %d more)\n", len(entry.Unresolved)-maxMissingPerDish)
					break
				}
				fmt.Fprintf(&out, "    - %s\n", ingredient)
			}
		}
	}

	return out.String()
}

func writeTier(out *strings.Builder, report *margin.Report, tier margin.Tier, title string) {
	var records []margin.Record
	for _, record := range report.Records {
		if record.Tier == tier {
			records = append(records, record)
		}
	}
	if len(records) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", title)
	// Records arrive sorted ascending; walk backwards for highest first.
	for i := len(records) - 1; i >= 0; i-- {
		fmt.Fprintf(out, "  - %s: %s%%\n", records[i].Dish, records[i].Margin.StringFixed(1))
	}
	out.WriteString("\n")
}

// DebugReport renders the reconciliation diagnostics: which dishes lack
// prices, which ingredients failed to resolve with nearest-candidate
// suggestions, and the fuzzy matches that were accepted.
func DebugReport(outcome *reconcile.Outcome, matcher *match.Matcher, candidates []string) string {
	var out strings.Builder
	report := outcome.Report

	out.WriteString("RECONCILIATION DIAGNOSTICS\n")
	out.WriteString(strings.Repeat("=", 30) + "\n\n")
	fmt.Fprintf(&out, "run %s\n\n", outcome.RunID)

	if len(report.MissingPrice) > 0 {
		out.WriteString("Dishes without a sale price:\n")
		for i, dish := range report.MissingPrice {
			fmt.Fprintf(&out, "  %d. %s\n", i+1, dish)
		}
		fmt.Fprintf(&out, "  total: %d\n\n", len(report.MissingPrice))
	} else {
		out.WriteString("Every dish has a sale price.\n\n")
	}

	if len(report.MissingIngredients) > 0 {
		out.WriteString("Unresolved ingredients:\n\n")
		for _, entry := range report.MissingIngredients {
			fmt.Fprintf(&out, "%s:\n", entry.Dish)
			for _, ingredient := range entry.Unresolved {
				fmt.Fprintf(&out, "  ? %s", ingredient)
				// A softer threshold here: show near misses so the
				// operator can fix the catalog spelling.
				if suggestion := matcher.Match(ingredient, candidates, 0.5); suggestion.Found() {
					fmt.Fprintf(&out, "  (closest: %s, %.0f%%)", suggestion.Matched, suggestion.Confidence*100)
				}
				out.WriteString("\n")
			}
			out.WriteString("\n")
		}
	} else {
		out.WriteString("Every ingredient resolved against the catalog.\n\n")
	}

	var fuzzy []string
	for _, dishCost := range outcome.Costs {
		for _, lineMatch := range dishCost.Matches {
			if lineMatch.Confidence < 1.0 {
				fuzzy = append(fuzzy,
					fmt.Sprintf("  %s -> %s (%.0f%%)", lineMatch.Ingredient, lineMatch.Matched, lineMatch.Confidence*100))
			}
		}
	}
	if len(fuzzy) > 0 {
		out.WriteString("Accepted fuzzy matches:\n")
		out.WriteString(strings.Join(fuzzy, "\n"))
		out.WriteString("\n")
	} else {
		out.WriteString("All ingredients matched exactly.\n")
	}

	return out.String()
}

// PurchaseList renders an aggregated shopping list: one line per matched
// ingredient with its total weight, the request total, and the missing
// set when the aggregation is incomplete.
func PurchaseList(result *purchase.Result) string {
	var out strings.Builder

	for _, entry := range result.Entries {
		fmt.Fprintf(&out, "%s %s g\n", entry.Name, entry.WeightGrams.StringFixed(0))
	}
	fmt.Fprintf(&out, "\nTotal purchase cost: %s\n", result.Total.StringFixed(0))

	if !result.Complete() {
		out.WriteString("\nNot found in the price catalog:\n")
		for _, name := range result.Missing {
			fmt.Fprintf(&out, "  - %s\n", name)
		}
		out.WriteString("Totals above cover only the matched ingredients.\n")
	}

	return out.String()
}

// DishCosts renders per-dish cost breakdowns from a reconciliation
// outcome for the requested dishes only.
func DishCosts(outcome *reconcile.Outcome, dishes []string) string {
	var out strings.Builder
	out.WriteString("COST BREAKDOWN\n\n")

	want := make(map[string]bool, len(dishes))
	for _, dish := range dishes {
		want[match.Normalize(dish)] = true
	}

	for _, dishCost := range outcome.Costs {
		if len(want) > 0 && !want[match.Normalize(dishCost.Dish)] {
			continue
		}
		fmt.Fprintf(&out, "%s\n", dishCost.Dish)
		for _, lineMatch := range dishCost.Matches {
			fmt.Fprintf(&out, "  %s -> %s (%.0f%%)\n", lineMatch.Ingredient, lineMatch.Matched, lineMatch.Confidence*100)
		}
		for _, unresolved := range dishCost.Unresolved {
			fmt.Fprintf(&out, "  %s -> no price\n", unresolved)
		}
		if dishCost.Resolved() {
			fmt.Fprintf(&out, "  total: %s\n\n", dishCost.Total.StringFixed(2))
		} else {
			out.WriteString("  total incomplete: add the missing prices first\n\n")
		}
	}

	return out.String()
}
