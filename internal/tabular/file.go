package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"foodcost/internal/catalog"

	"github.com/shopspring/decimal"
)

// File names inside the store directory.
const (
	PricesFile  = "prices.csv"
	RecipesFile = "recipes.csv"
	SalesFile   = "sales.csv"
)

var (
	pricesHeader  = []string{"ingredient", "price_per_kg"}
	recipesHeader = []string{"dish", "ingredient", "weight_grams"}
	salesHeader   = []string{"dish", "sale_price"}
)

// FileStore reads and writes the three tables as CSV files in a directory.
// Rows with unparseable numbers are skipped with a warning rather than
// failing the load; a missing file or a header without the required
// columns fails the whole load.
type FileStore struct {
	Dir string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Ensure creates the prices and recipes files with headers when absent.
func (fs *FileStore) Ensure() error {
	if err := os.MkdirAll(fs.Dir, 0755); err != nil {
		return err
	}
	for name, header := range map[string][]string{
		PricesFile:  pricesHeader,
		RecipesFile: recipesHeader,
	} {
		path := filepath.Join(fs.Dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := writeCSV(path, header, nil); err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
	}
	return nil
}

// EnsureSales creates the sales file when absent, seeding every known dish
// at price zero so the sheet is easy to fill in.
func (fs *FileStore) EnsureSales(recipes *catalog.RecipeBook) error {
	path := filepath.Join(fs.Dir, SalesFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	var rows [][]string
	if recipes != nil {
		for _, dish := range recipes.Dishes() {
			rows = append(rows, []string{dish, "0"})
		}
	}
	if err := os.MkdirAll(fs.Dir, 0755); err != nil {
		return err
	}
	return writeCSV(path, salesHeader, rows)
}

func (fs *FileStore) Prices() (*catalog.PriceBook, error) {
	table, err := fs.readTable(PricesFile, pricesHeader)
	if err != nil {
		return nil, err
	}
	book := catalog.NewPriceBook()
	for _, row := range table.rows {
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(row[1]))
		if err != nil || price.IsNegative() {
			slog.Warn("skipping price row with bad price", "table", PricesFile, "ingredient", name, "value", row[1])
			continue
		}
		book.Upsert(catalog.IngredientPrice{Name: name, PricePerKg: price})
	}
	return book, nil
}

func (fs *FileStore) Recipes() (*catalog.RecipeBook, error) {
	table, err := fs.readTable(RecipesFile, recipesHeader)
	if err != nil {
		return nil, err
	}
	var rows []catalog.RecipeLine
	for _, row := range table.rows {
		dish := strings.TrimSpace(row[0])
		ingredient := strings.TrimSpace(row[1])
		if dish == "" || ingredient == "" {
			continue
		}
		weight, err := decimal.NewFromString(strings.TrimSpace(row[2]))
		if err != nil || !weight.IsPositive() {
			slog.Warn("skipping recipe row with bad weight", "table", RecipesFile, "dish", dish, "ingredient", ingredient, "value", row[2])
			continue
		}
		rows = append(rows, catalog.RecipeLine{Dish: dish, Ingredient: ingredient, WeightGrams: weight})
	}
	return catalog.NewRecipeBook(rows...), nil
}

func (fs *FileStore) Sales() (*catalog.SaleSheet, error) {
	table, err := fs.readTable(SalesFile, salesHeader)
	if err != nil {
		return nil, err
	}
	sheet := catalog.NewSaleSheet()
	for _, row := range table.rows {
		dish := strings.TrimSpace(row[0])
		if dish == "" {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(row[1]))
		if err != nil || price.IsNegative() {
			slog.Warn("skipping sale row with bad price", "table", SalesFile, "dish", dish, "value", row[1])
			continue
		}
		sheet.Set(dish, price)
	}
	return sheet, nil
}

func (fs *FileStore) WritePrices(book *catalog.PriceBook) error {
	rows := make([][]string, 0, book.Len())
	for _, entry := range book.Rows() {
		rows = append(rows, []string{entry.Name, entry.PricePerKg.String()})
	}
	return writeCSV(filepath.Join(fs.Dir, PricesFile), pricesHeader, rows)
}

func (fs *FileStore) WriteRecipes(book *catalog.RecipeBook) error {
	var rows [][]string
	for _, line := range book.Rows() {
		rows = append(rows, []string{line.Dish, line.Ingredient, line.WeightGrams.String()})
	}
	return writeCSV(filepath.Join(fs.Dir, RecipesFile), recipesHeader, rows)
}

func (fs *FileStore) WriteSales(sheet *catalog.SaleSheet) error {
	var rows [][]string
	for _, row := range sheet.Rows() {
		rows = append(rows, []string{row.Dish, row.Price.String()})
	}
	return writeCSV(filepath.Join(fs.Dir, SalesFile), salesHeader, rows)
}

type table struct {
	rows [][]string
}

// readTable reads a CSV file and reorders each row to the required column
// order. Column headers are matched by trimmed, lowercased name, so extra
// columns and different orderings are accepted.
func (fs *FileStore) readTable(name string, required []string) (*table, error) {
	path := filepath.Join(fs.Dir, name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", name, ErrMissingTable)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close table file", "table", name, "error", err)
		}
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &MissingColumnsError{Table: name, Missing: required}
		}
		return nil, fmt.Errorf("read %s header: %w", name, err)
	}

	indices := make([]int, len(required))
	var missing []string
	for i, want := range required {
		indices[i] = -1
		for j, col := range header {
			if strings.EqualFold(strings.TrimSpace(col), want) {
				indices[i] = j
				break
			}
		}
		if indices[i] < 0 {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Table: name, Missing: missing}
	}

	t := &table{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		row := make([]string, len(required))
		ok := true
		for i, j := range indices {
			if j >= len(record) {
				ok = false
				break
			}
			row[i] = record[j]
		}
		if !ok {
			slog.Warn("skipping short row", "table", name, "row", record)
			continue
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
