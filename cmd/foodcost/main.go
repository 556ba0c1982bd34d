package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"foodcost/internal/catalog"
	"foodcost/internal/config"
	"foodcost/internal/match"
	"foodcost/internal/purchase"
	"foodcost/internal/reconcile"
	"foodcost/internal/render"
	"foodcost/internal/tabular"
)

func main() {
	var (
		initTables bool
		report     bool
		debug      bool
		purchFile  string
		costDishes string
		pricesFile string
		addRecipe  string
		linesFile  string
		deletePrc  string
		deleteDish string
		dataDir    string
		threshold  float64
		verbose    bool
		help       bool
	)

	flag.BoolVar(&initTables, "init", false, "Create the data tables if they do not exist")
	flag.BoolVar(&report, "report", false, "Print the margin and food cost report")
	flag.BoolVar(&debug, "debug", false, "Print reconciliation diagnostics")
	flag.StringVar(&purchFile, "purchase", "", "Aggregate a purchase list from dish/portion lines (file or - for stdin)")
	flag.StringVar(&costDishes, "cost", "", "Print cost breakdowns for a comma-separated dish list")
	flag.StringVar(&pricesFile, "set-prices", "", "Bulk-load ingredient prices from name/weight/amount lines (file or - for stdin)")
	flag.StringVar(&addRecipe, "add-recipe", "", "Replace the named dish's recipe (lines via -lines)")
	flag.StringVar(&linesFile, "lines", "-", "Recipe lines for -add-recipe (file or - for stdin)")
	flag.StringVar(&deletePrc, "delete", "", "Delete an ingredient from the price catalog")
	flag.StringVar(&deleteDish, "delete-dish", "", "Delete a dish and its recipe")
	flag.StringVar(&dataDir, "data", "", "Data directory (overrides FOODCOST_DATA_DIR)")
	flag.Float64Var(&threshold, "threshold", 0, "Margin alert threshold percent (overrides FOODCOST_MARGIN_THRESHOLD)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&help, "h", false, "Show help message")
	flag.Parse()

	if help {
		showHelp()
		return
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if threshold > 0 {
		cfg.MarginThresholdPercent = threshold
	}

	ctx := context.Background()
	store := tabular.NewFileStore(cfg.DataDir)

	switch {
	case initTables:
		runInit(store)
	case report:
		runReport(ctx, store, cfg, false)
	case debug:
		runReport(ctx, store, cfg, true)
	case purchFile != "":
		runPurchase(store, cfg, purchFile)
	case costDishes != "":
		runCost(ctx, store, cfg, costDishes)
	case pricesFile != "":
		runSetPrices(store, pricesFile)
	case addRecipe != "":
		runAddRecipe(store, addRecipe, linesFile)
	case deletePrc != "":
		runDeletePrice(store, deletePrc)
	case deleteDish != "":
		runDeleteDish(store, deleteDish)
	default:
		showHelp()
	}
}

func engineOptions(cfg *config.Config) reconcile.Options {
	return reconcile.Options{
		MatchThreshold:         cfg.MatchThreshold,
		MarginThresholdPercent: cfg.MarginThresholdPercent,
	}
}

func runInit(store *tabular.FileStore) {
	if err := store.Ensure(); err != nil {
		log.Fatalf("failed to create tables: %v", err)
	}
	recipes, err := store.Recipes()
	if err != nil {
		log.Fatalf("failed to load recipes: %v", err)
	}
	if err := store.EnsureSales(recipes); err != nil {
		log.Fatalf("failed to seed sale prices: %v", err)
	}
	fmt.Printf("tables ready in %s\n", store.Dir)
}

func runReport(ctx context.Context, store *tabular.FileStore, cfg *config.Config, debug bool) {
	outcome, err := reconcile.Run(ctx, store, engineOptions(cfg))
	if err != nil {
		if errors.Is(err, tabular.ErrMissingTable) {
			log.Fatalf("%v (run -init first)", err)
		}
		log.Fatalf("reconciliation failed: %v", err)
	}
	if debug {
		prices, err := store.Prices()
		if err != nil {
			log.Fatalf("failed to load price catalog: %v", err)
		}
		matcher := match.NewMatcher(match.DefaultSynonyms())
		fmt.Print(render.DebugReport(outcome, matcher, prices.Names()))
		return
	}
	fmt.Print(render.MarginReport(outcome))
}

func runCost(ctx context.Context, store *tabular.FileStore, cfg *config.Config, dishCSV string) {
	dishes := splitList(dishCSV)
	if len(dishes) == 0 {
		log.Fatalf("no dishes given to -cost")
	}
	outcome, err := reconcile.Run(ctx, store, engineOptions(cfg))
	if err != nil {
		log.Fatalf("reconciliation failed: %v", err)
	}
	fmt.Print(render.DishCosts(outcome, dishes))
}

func runPurchase(store *tabular.FileStore, cfg *config.Config, input string) {
	text := readInput(input)
	items, bad, err := catalog.ParsePurchaseLines(text)
	if err != nil {
		log.Fatalf("no valid dish/portion lines: %v", err)
	}
	reportBadLines(bad)

	prices, err := store.Prices()
	if err != nil {
		log.Fatalf("failed to load price catalog: %v", err)
	}
	recipes, err := store.Recipes()
	if err != nil {
		log.Fatalf("failed to load recipes: %v", err)
	}

	request := make(purchase.Request, 0, len(items))
	for _, item := range items {
		request = append(request, purchase.Item{Dish: item.Dish, Portions: item.Portions})
	}

	aggregator := purchase.NewAggregator(match.NewMatcher(match.DefaultSynonyms()), cfg.MatchThreshold)
	result, err := aggregator.Aggregate(request, recipes, prices)
	if err != nil {
		log.Fatalf("purchase aggregation failed: %v", err)
	}
	fmt.Print(render.PurchaseList(result))
}

func runSetPrices(store *tabular.FileStore, input string) {
	text := readInput(input)
	rows, bad, err := catalog.ParsePriceLines(text)
	if err != nil {
		log.Fatalf("no valid price lines: %v", err)
	}
	reportBadLines(bad)

	prices, err := store.Prices()
	if err != nil {
		log.Fatalf("failed to load price catalog: %v", err)
	}
	for _, row := range rows {
		prices.Upsert(row)
	}
	if err := store.WritePrices(prices); err != nil {
		log.Fatalf("failed to write price catalog: %v", err)
	}
	fmt.Printf("updated %d price entries (%d lines skipped)\n", len(rows), len(bad))
}

func runAddRecipe(store *tabular.FileStore, dish, input string) {
	text := readInput(input)
	lines, bad, err := catalog.ParseRecipeLines(dish, text)
	if err != nil {
		log.Fatalf("no valid recipe lines: %v", err)
	}
	reportBadLines(bad)

	recipes, err := store.Recipes()
	if err != nil {
		log.Fatalf("failed to load recipes: %v", err)
	}
	recipes.ReplaceDish(dish, lines)
	if err := store.WriteRecipes(recipes); err != nil {
		log.Fatalf("failed to write recipes: %v", err)
	}
	if err := store.EnsureSales(recipes); err != nil {
		log.Fatalf("failed to seed sale prices: %v", err)
	}
	fmt.Printf("recipe for %s saved with %d lines\n", dish, len(lines))
}

func runDeletePrice(store *tabular.FileStore, name string) {
	prices, err := store.Prices()
	if err != nil {
		log.Fatalf("failed to load price catalog: %v", err)
	}
	if !prices.Delete(name) {
		log.Fatalf("no price entry for %q", name)
	}
	if err := store.WritePrices(prices); err != nil {
		log.Fatalf("failed to write price catalog: %v", err)
	}
	fmt.Printf("deleted %s from the price catalog\n", name)
}

func runDeleteDish(store *tabular.FileStore, dish string) {
	recipes, err := store.Recipes()
	if err != nil {
		log.Fatalf("failed to load recipes: %v", err)
	}
	if !recipes.DeleteDish(dish) {
		log.Fatalf("no recipe for %q", dish)
	}
	if err := store.WriteRecipes(recipes); err != nil {
		log.Fatalf("failed to write recipes: %v", err)
	}
	fmt.Printf("deleted dish %s\n", dish)
}

func readInput(src string) string {
	if src == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("failed to read stdin: %v", err)
		}
		return string(data)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		log.Fatalf("failed to read %s: %v", src, err)
	}
	return string(data)
}

func reportBadLines(bad []catalog.BadLine) {
	for _, b := range bad {
		fmt.Fprintf(os.Stderr, "skipped line %q: %s\n", b.Line, b.Reason)
	}
}

func splitList(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func showHelp() {
	fmt.Println("foodcost: recipe costing, margin reporting and purchase planning")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  foodcost -init                 create the data tables")
	fmt.Println("  foodcost -report               margin and food cost report")
	fmt.Println("  foodcost -debug                reconciliation diagnostics")
	fmt.Println("  foodcost -cost 'Dish,Dish'     cost breakdown for named dishes")
	fmt.Println("  foodcost -purchase FILE        shopping list from dish/portion lines")
	fmt.Println("  foodcost -set-prices FILE      bulk-load ingredient prices")
	fmt.Println("  foodcost -add-recipe Dish -lines FILE")
	fmt.Println("                                 replace a dish's recipe")
	fmt.Println("  foodcost -delete Name          delete a price entry")
	fmt.Println("  foodcost -delete-dish Dish     delete a dish")
	fmt.Println()
	fmt.Println("Use - as FILE to read from stdin.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}
