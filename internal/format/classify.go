package format

import (
	"strings"

	"github.com/leapstack-labs/docsql/pkg/core"
)

// namePatterns mark a column numeric by name alone.
var namePatterns = []string{"_population", "_km2", "_usd", "percentage", "density", "gdp", "area"}

// NumericByName reports whether the column name matches a numeric name pattern.
func NumericByName(name string) bool {
	lower := strings.ToLower(name)
	for _, p := range namePatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// NumericByType reports whether column col holds at least one non-null value
// and only numbers among its non-null values.
func NumericByType(t *core.ResultTable, col int) bool {
	seen := false
	for _, row := range t.Rows {
		v := row[col]
		if v.IsNull() {
			continue
		}
		if !v.IsNumber() {
			return false
		}
		seen = true
	}
	return seen
}

// Classify returns, per column index, whether the column is numeric.
func Classify(t *core.ResultTable) []bool {
	numeric := make([]bool, len(t.Columns))
	for i, name := range t.Columns {
		numeric[i] = NumericByName(name) || NumericByType(t, i)
	}
	return numeric
}
