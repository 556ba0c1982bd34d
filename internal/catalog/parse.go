package catalog

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNoValidLines is returned when free-text input contained no parseable
// row at all. Partially bad input is not an error: valid rows are returned
// together with the rejected lines.
var ErrNoValidLines = errors.New("no valid lines in input")

// BadLine is one rejected input line with the reason it was rejected.
// Callers surface bad lines to the user; they never abort the valid rows
// parsed alongside them.
type BadLine struct {
	Line   string
	Reason string
}

var (
	priceLineCleanup = regexp.MustCompile(`[^\p{L}\p{N}\s.,-]`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	recipeLineRe     = regexp.MustCompile(`^(.+?)\s+(-?\d+[.,]?\d*)\s*$`)
)

// recipeSubstitutions rewrites shorthand ingredient names to their catalog
// spelling during recipe entry. Matched by substring on the lowered name.
var recipeSubstitutions = []struct{ shorthand, canonical string }{
	{"thai chili", "Sweet chili sauce"},
	{"shrimp", "Tiger prawns"},
	{"vegetable oil", "Vegetable oil"},
}

// ParsePriceLines parses bulk price input, one purchase per line:
// "<name> <weight-grams> <amount-paid>". The unit price is derived as
// amount/weight scaled to a kilogram and rounded to cents. Lines that do
// not split into three fields, or carry non-positive numbers, are rejected
// individually. ErrNoValidLines is returned when nothing parsed.
func ParsePriceLines(text string) ([]IngredientPrice, []BadLine, error) {
	var rows []IngredientPrice
	var bad []BadLine

	thousand := decimal.NewFromInt(1000)
	for _, raw := range strings.Split(text, "\n") {
		line := cleanPriceLine(raw)
		if line == "" {
			continue
		}

		name, weightStr, amountStr, ok := rsplit3(line)
		if !ok {
			bad = append(bad, BadLine{Line: line, Reason: "expected: name weight amount"})
			continue
		}
		weight, werr := decimal.NewFromString(weightStr)
		amount, aerr := decimal.NewFromString(amountStr)
		if werr != nil || aerr != nil {
			bad = append(bad, BadLine{Line: line, Reason: "weight and amount must be numbers"})
			continue
		}
		if !weight.IsPositive() || !amount.IsPositive() {
			bad = append(bad, BadLine{Line: line, Reason: "weight and amount must be positive"})
			continue
		}

		rows = append(rows, IngredientPrice{
			Name:       strings.TrimSpace(name),
			PricePerKg: amount.Div(weight).Mul(thousand).Round(2),
		})
	}

	if len(rows) == 0 {
		return nil, bad, ErrNoValidLines
	}
	return rows, bad, nil
}

// ParseRecipeLines parses recipe entry input, one ingredient per line:
// "<ingredient> <weight-grams>". Shorthand names are rewritten to their
// catalog spelling and the first letter is capitalized. Weights must be
// positive. ErrNoValidLines is returned when nothing parsed.
func ParseRecipeLines(dish, text string) ([]RecipeLine, []BadLine, error) {
	var rows []RecipeLine
	var bad []BadLine

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		m := recipeLineRe.FindStringSubmatch(line)
		if m == nil {
			bad = append(bad, BadLine{Line: line, Reason: "expected: ingredient weight"})
			continue
		}
		weight, err := decimal.NewFromString(strings.ReplaceAll(m[2], ",", "."))
		if err != nil {
			bad = append(bad, BadLine{Line: line, Reason: "weight must be a number"})
			continue
		}
		if !weight.IsPositive() {
			bad = append(bad, BadLine{Line: line, Reason: "weight must be positive"})
			continue
		}

		name := canonicalIngredientName(m[1])
		if name == "" {
			bad = append(bad, BadLine{Line: line, Reason: "missing ingredient name"})
			continue
		}
		rows = append(rows, RecipeLine{Dish: dish, Ingredient: name, WeightGrams: weight})
	}

	if len(rows) == 0 {
		return nil, bad, ErrNoValidLines
	}
	return rows, bad, nil
}

// PurchaseLine is one parsed purchase request row.
type PurchaseLine struct {
	Dish     string
	Portions int
}

// ParsePurchaseLines parses purchase input, one dish per line:
// "<dish> <portions>". Portions must be a positive integer.
// ErrNoValidLines is returned when nothing parsed.
func ParsePurchaseLines(text string) ([]PurchaseLine, []BadLine, error) {
	var rows []PurchaseLine
	var bad []BadLine

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		i := strings.LastIndexByte(line, ' ')
		if i < 0 {
			bad = append(bad, BadLine{Line: line, Reason: "expected: dish portions"})
			continue
		}
		dish := strings.TrimSpace(line[:i])
		portions, err := decimal.NewFromString(line[i+1:])
		if err != nil || !portions.IsInteger() {
			bad = append(bad, BadLine{Line: line, Reason: "portions must be a whole number"})
			continue
		}
		count := int(portions.IntPart())
		if count <= 0 {
			bad = append(bad, BadLine{Line: line, Reason: "portions must be positive"})
			continue
		}
		if dish == "" {
			bad = append(bad, BadLine{Line: line, Reason: "missing dish name"})
			continue
		}
		rows = append(rows, PurchaseLine{Dish: dish, Portions: count})
	}

	if len(rows) == 0 {
		return nil, bad, ErrNoValidLines
	}
	return rows, bad, nil
}

// cleanPriceLine strips pasted-in junk: non-breaking spaces, currency
// signs and other symbols, comma decimal separators, doubled spaces.
func cleanPriceLine(raw string) string {
	line := strings.ReplaceAll(raw, " ", " ")
	line = priceLineCleanup.ReplaceAllString(line, "")
	line = strings.ReplaceAll(line, ",", ".")
	line = whitespaceRun.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

// rsplit3 splits a line on its last two spaces so multi-word names survive.
func rsplit3(line string) (name, weight, amount string, ok bool) {
	j := strings.LastIndexByte(line, ' ')
	if j < 0 {
		return "", "", "", false
	}
	i := strings.LastIndexByte(line[:j], ' ')
	if i < 0 {
		return "", "", "", false
	}
	return line[:i], line[i+1 : j], line[j+1:], true
}

func canonicalIngredientName(raw string) string {
	name := whitespaceRun.ReplaceAllString(strings.TrimSpace(raw), " ")
	if name == "" {
		return ""
	}
	lowered := strings.ToLower(name)
	for _, sub := range recipeSubstitutions {
		if strings.Contains(lowered, sub.shorthand) {
			name = sub.canonical
			break
		}
	}
	runes := []rune(name)
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
