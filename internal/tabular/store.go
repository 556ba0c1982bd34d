// Package tabular loads and persists the engine's three tables as plain
// tabular records. The engine itself never touches storage; it takes a
// fresh snapshot from a Source per call and hands mutated books back to a
// Writer. Implementations: a CSV file store and an in-memory store.
package tabular

import (
	"errors"
	"fmt"
	"strings"

	"foodcost/internal/catalog"
)

// ErrMissingTable reports a required source table that does not exist.
// Nothing is computed without the table.
var ErrMissingTable = errors.New("required table missing")

// MissingColumnsError reports a table whose header lacks required columns.
type MissingColumnsError struct {
	Table   string
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("table %s: missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// Source supplies fresh snapshots of the three tables. Every call re-reads
// the backing data; the engine never caches across calls.
type Source interface {
	Prices() (*catalog.PriceBook, error)
	Recipes() (*catalog.RecipeBook, error)
	Sales() (*catalog.SaleSheet, error)
}

// Writer persists mutated books. The engine only computes; callers decide
// when to write.
type Writer interface {
	WritePrices(*catalog.PriceBook) error
	WriteRecipes(*catalog.RecipeBook) error
	WriteSales(*catalog.SaleSheet) error
}

// Store is a combined load/persist collaborator.
type Store interface {
	Source
	Writer
}
