package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParsePriceLines(t *testing.T) {
	text := "Broccoli 4000 250\n" +
		"Sesame 1000 320\n" +
		"Pesto sauce 500 280\n" +
		"nonsense line\n" +
		"Salt -10 5\n"

	rows, bad, err := ParsePriceLines(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 parsed rows, got %v", rows)
	}
	if len(bad) != 2 {
		t.Fatalf("expected 2 rejected lines, got %v", bad)
	}

	// 250 paid for 4000g is 62.5 per kg.
	if rows[0].Name != "Broccoli" || !rows[0].PricePerKg.Equal(decimal.RequireFromString("62.5")) {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	// Multi-word names survive the right-split.
	if rows[2].Name != "Pesto sauce" || !rows[2].PricePerKg.Equal(decimal.RequireFromString("560")) {
		t.Fatalf("unexpected pesto row: %+v", rows[2])
	}
}

func TestParsePriceLinesCleansPastedText(t *testing.T) {
	rows, bad, err := ParsePriceLines("Брокколи 4000 250,50")
	if err != nil {
		t.Fatalf("unexpected error: %v (bad=%v)", err, bad)
	}
	if len(rows) != 1 || rows[0].Name != "Брокколи" {
		t.Fatalf("expected nbsp-separated line to parse, got %v", rows)
	}
	want := decimal.RequireFromString("250.50").
		Div(decimal.RequireFromString("4000")).
		Mul(decimal.NewFromInt(1000)).Round(2)
	if !rows[0].PricePerKg.Equal(want) {
		t.Fatalf("expected price %v, got %v", want, rows[0].PricePerKg)
	}
}

func TestParsePriceLinesAllBad(t *testing.T) {
	rows, bad, err := ParsePriceLines("just words\nmore words\n")
	if !errors.Is(err, ErrNoValidLines) {
		t.Fatalf("expected ErrNoValidLines, got rows=%v err=%v", rows, err)
	}
	if len(bad) != 2 {
		t.Fatalf("expected both lines reported, got %v", bad)
	}
}

func TestParseRecipeLines(t *testing.T) {
	text := "Tiger prawns 50\n" +
		"zucchini 40\n" +
		"thai chili dressing 20\n" +
		"water -5\n"

	rows, bad, err := ParseRecipeLines("Prawn salad", text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %v", rows)
	}
	if len(bad) != 1 {
		t.Fatalf("expected negative weight rejected, got %v", bad)
	}

	if rows[1].Ingredient != "Zucchini" {
		t.Fatalf("expected capitalized name, got %q", rows[1].Ingredient)
	}
	// Shorthand rewritten to the catalog spelling.
	if rows[2].Ingredient != "Sweet chili sauce" {
		t.Fatalf("expected substitution, got %q", rows[2].Ingredient)
	}
	for _, row := range rows {
		if row.Dish != "Prawn salad" {
			t.Fatalf("line not attributed to dish: %+v", row)
		}
	}
}

func TestParsePurchaseLines(t *testing.T) {
	text := "Skirt steak 12\n" +
		"Crispy eggplant salad 22\n" +
		"Soup 0\n" +
		"Burger two\n"

	rows, bad, err := ParsePurchaseLines(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %v", rows)
	}
	if rows[0].Dish != "Skirt steak" || rows[0].Portions != 12 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if len(bad) != 2 {
		t.Fatalf("expected zero portions and non-numeric portions rejected, got %v", bad)
	}
}

func TestParsePurchaseLinesEmpty(t *testing.T) {
	if _, _, err := ParsePurchaseLines("   \n \n"); !errors.Is(err, ErrNoValidLines) {
		t.Fatalf("expected ErrNoValidLines for empty input, got %v", err)
	}
}
