// Package reconcile runs a full pass over the three tables: cost every
// dish in the recipe book, then build the margin report against the
// sale-price sheet. Each run takes a fresh snapshot from its Source and
// shares no state with any other run, so independent runs can execute
// concurrently.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foodcost/internal/cost"
	"foodcost/internal/margin"
	"foodcost/internal/match"
	"foodcost/internal/tabular"

	"github.com/google/uuid"
)

// Options tunes one run. Zero values fall back to the package defaults.
type Options struct {
	MatchThreshold         float64
	MarginThresholdPercent float64
	Synonyms               *match.Synonyms
}

// Outcome is the result of one reconciliation run.
type Outcome struct {
	RunID   string
	Report  *margin.Report
	Costs   []cost.DishCost
	Elapsed time.Duration
}

// Run loads the three tables and produces the margin report. Table load
// failures abort the run; no partial report is produced without all three
// tables.
func Run(ctx context.Context, src tabular.Source, opts Options) (*Outcome, error) {
	started := time.Now()
	runID := uuid.NewString()

	prices, err := src.Prices()
	if err != nil {
		return nil, fmt.Errorf("load price catalog: %w", err)
	}
	recipes, err := src.Recipes()
	if err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	sales, err := src.Sales()
	if err != nil {
		return nil, fmt.Errorf("load sale prices: %w", err)
	}

	synonyms := opts.Synonyms
	if synonyms == nil {
		synonyms = match.DefaultSynonyms()
	}
	calculator := cost.NewCalculator(match.NewMatcher(synonyms), opts.MatchThreshold)

	dishes := recipes.Dishes()
	costs := make([]cost.DishCost, 0, len(dishes))
	for _, dish := range dishes {
		lines, ok := recipes.LinesFor(dish)
		if !ok {
			continue
		}
		costs = append(costs, calculator.CostOf(dish, lines, prices))
	}

	report := margin.Build(costs, sales, opts.MarginThresholdPercent)

	outcome := &Outcome{
		RunID:   runID,
		Report:  report,
		Costs:   costs,
		Elapsed: time.Since(started),
	}
	slog.InfoContext(ctx, "reconciliation run complete",
		"run_id", runID,
		"dishes", len(costs),
		"margin_records", len(report.Records),
		"missing_price", len(report.MissingPrice),
		"missing_ingredients", len(report.MissingIngredients),
		"elapsed", outcome.Elapsed,
	)
	return outcome, nil
}
