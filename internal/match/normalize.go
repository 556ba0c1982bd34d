package match

import (
	"strings"

	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// Normalize canonicalizes a free-text name for comparison: runs of
// whitespace collapse to a single space, leading/trailing whitespace is
// trimmed, and the result is Unicode case folded. Idempotent. A string
// that is empty or whitespace-only normalizes to "".
func Normalize(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return foldCaser.String(strings.Join(fields, " "))
}
