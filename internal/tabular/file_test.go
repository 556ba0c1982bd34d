package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"foodcost/internal/catalog"

	"github.com/shopspring/decimal"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	prices := catalog.NewPriceBook(
		catalog.IngredientPrice{Name: "Cucumber", PricePerKg: dec("150")},
		catalog.IngredientPrice{Name: "Soy sauce", PricePerKg: dec("320.5")},
	)
	recipes := catalog.NewRecipeBook(
		catalog.RecipeLine{Dish: "Salad", Ingredient: "Cucumber", WeightGrams: dec("100")},
		catalog.RecipeLine{Dish: "Salad", Ingredient: "Soy sauce", WeightGrams: dec("15")},
	)
	sales := catalog.NewSaleSheet(catalog.SalePrice{Dish: "Salad", Price: dec("450")})

	if err := fs.WritePrices(prices); err != nil {
		t.Fatalf("write prices: %v", err)
	}
	if err := fs.WriteRecipes(recipes); err != nil {
		t.Fatalf("write recipes: %v", err)
	}
	if err := fs.WriteSales(sales); err != nil {
		t.Fatalf("write sales: %v", err)
	}

	gotPrices, err := fs.Prices()
	if err != nil {
		t.Fatalf("read prices: %v", err)
	}
	if price, ok := gotPrices.Price("soy sauce"); !ok || !price.Equal(dec("320.5")) {
		t.Fatalf("price round trip failed: %v ok=%v", price, ok)
	}

	gotRecipes, err := fs.Recipes()
	if err != nil {
		t.Fatalf("read recipes: %v", err)
	}
	lines, ok := gotRecipes.LinesFor("salad")
	if !ok || len(lines) != 2 {
		t.Fatalf("recipe round trip failed: ok=%v lines=%v", ok, lines)
	}

	gotSales, err := fs.Sales()
	if err != nil {
		t.Fatalf("read sales: %v", err)
	}
	if price, ok := gotSales.Lookup("Salad"); !ok || !price.Equal(dec("450")) {
		t.Fatalf("sales round trip failed: %v ok=%v", price, ok)
	}
}

func TestFileStoreMissingTable(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	if _, err := fs.Prices(); !errors.Is(err, ErrMissingTable) {
		t.Fatalf("expected ErrMissingTable, got %v", err)
	}
}

func TestFileStoreMissingColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PricesFile)
	if err := os.WriteFile(path, []byte("name,price\nCucumber,150\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileStore(dir).Prices()
	var missingCols *MissingColumnsError
	if !errors.As(err, &missingCols) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	if missingCols.Table != PricesFile {
		t.Fatalf("unexpected table name %q", missingCols.Table)
	}
}

func TestFileStoreToleratesColumnOrderAndExtras(t *testing.T) {
	dir := t.TempDir()
	csv := "weight_grams, dish ,ingredient,notes\n" +
		"100,Salad,Cucumber,crunchy\n" +
		"oops,Salad,Tomato,skipped\n"
	if err := os.WriteFile(filepath.Join(dir, RecipesFile), []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}

	book, err := NewFileStore(dir).Recipes()
	if err != nil {
		t.Fatalf("read recipes: %v", err)
	}
	lines, ok := book.LinesFor("Salad")
	if !ok || len(lines) != 1 {
		t.Fatalf("expected the one good row, got ok=%v lines=%v", ok, lines)
	}
	if lines[0].Ingredient != "Cucumber" || !lines[0].WeightGrams.Equal(dec("100")) {
		t.Fatalf("unexpected line: %+v", lines[0])
	}
}

func TestFileStoreEnsureSalesSeedsDishes(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)

	recipes := catalog.NewRecipeBook(
		catalog.RecipeLine{Dish: "Borscht", Ingredient: "Beets", WeightGrams: dec("200")},
		catalog.RecipeLine{Dish: "Salad", Ingredient: "Cucumber", WeightGrams: dec("100")},
	)
	if err := fs.EnsureSales(recipes); err != nil {
		t.Fatalf("ensure sales: %v", err)
	}

	sheet, err := fs.Sales()
	if err != nil {
		t.Fatalf("read sales: %v", err)
	}
	for _, dish := range []string{"Borscht", "Salad"} {
		price, ok := sheet.Lookup(dish)
		if !ok || !price.IsZero() {
			t.Fatalf("expected %q seeded at zero, got %v ok=%v", dish, price, ok)
		}
	}

	// A second Ensure must not clobber an existing sheet.
	sheet.Set("Borscht", dec("350"))
	if err := fs.WriteSales(sheet); err != nil {
		t.Fatal(err)
	}
	if err := fs.EnsureSales(recipes); err != nil {
		t.Fatal(err)
	}
	sheet, err = fs.Sales()
	if err != nil {
		t.Fatal(err)
	}
	if price, _ := sheet.Lookup("Borscht"); !price.Equal(dec("350")) {
		t.Fatalf("EnsureSales overwrote existing sheet: %v", price)
	}
}
