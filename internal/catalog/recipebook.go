package catalog

import (
	"sort"
	"strings"

	"foodcost/internal/match"
)

// RecipeBook groups recipe lines by dish. Dish identity is the trimmed
// display name compared case-insensitively, so "Caesar salad" and "caesar
// Salad" are the same dish; the first spelling written is the one shown.
// Lines are immutable once written except through ReplaceDish/DeleteDish.
type RecipeBook struct {
	dishes map[string]dishEntry
}

type dishEntry struct {
	display string
	lines   []RecipeLine
}

// NewRecipeBook builds a book from rows, appending each line to its dish in
// input order.
func NewRecipeBook(rows ...RecipeLine) *RecipeBook {
	b := &RecipeBook{dishes: make(map[string]dishEntry)}
	for _, row := range rows {
		b.appendLine(row)
	}
	return b
}

func (b *RecipeBook) appendLine(row RecipeLine) {
	display := strings.TrimSpace(row.Dish)
	key := match.Normalize(display)
	if key == "" {
		return
	}
	entry, ok := b.dishes[key]
	if !ok {
		entry = dishEntry{display: display}
	}
	row.Dish = entry.display
	entry.lines = append(entry.lines, row)
	b.dishes[key] = entry
}

// ReplaceDish deletes any existing lines for dish and writes the given
// lines in order. Lines with a different Dish field are rewritten to dish.
func (b *RecipeBook) ReplaceDish(dish string, lines []RecipeLine) {
	b.DeleteDish(dish)
	for _, line := range lines {
		line.Dish = dish
		b.appendLine(line)
	}
}

// DeleteDish removes a dish and all its lines, reporting whether the dish
// existed.
func (b *RecipeBook) DeleteDish(dish string) bool {
	key := match.Normalize(dish)
	if _, ok := b.dishes[key]; !ok {
		return false
	}
	delete(b.dishes, key)
	return true
}

// LinesFor returns the dish's recipe lines in written order, looked up
// case-insensitively. The second return reports whether the dish exists.
func (b *RecipeBook) LinesFor(dish string) ([]RecipeLine, bool) {
	entry, ok := b.dishes[match.Normalize(dish)]
	if !ok {
		return nil, false
	}
	lines := make([]RecipeLine, len(entry.lines))
	copy(lines, entry.lines)
	return lines, true
}

// Dishes lists display names sorted case-insensitively.
func (b *RecipeBook) Dishes() []string {
	names := make([]string, 0, len(b.dishes))
	for _, entry := range b.dishes {
		names = append(names, entry.display)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

// Rows returns every recipe line grouped by dish in Dishes() order, for
// persistence.
func (b *RecipeBook) Rows() []RecipeLine {
	var rows []RecipeLine
	for _, dish := range b.Dishes() {
		lines, _ := b.LinesFor(dish)
		rows = append(rows, lines...)
	}
	return rows
}

// Len reports the number of dishes.
func (b *RecipeBook) Len() int {
	return len(b.dishes)
}
