package format

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// rule is the numeric formatting applied to one column.
type rule int

const (
	ruleNone rule = iota
	ruleFixed2
	ruleThousands
	ruleRound2
)

// ruleFor picks the formatting rule for a numeric column. First match wins.
func ruleFor(name string) rule {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "percentage"), strings.Contains(lower, "density"):
		return ruleFixed2
	case strings.Contains(lower, "population"), strings.Contains(lower, "gdp"), strings.Contains(lower, "area"):
		return ruleThousands
	default:
		return ruleRound2
	}
}

// FormatFixed2 renders f rounded to two decimals, keeping trailing zeros.
func FormatFixed2(f float64) string {
	return strconv.FormatFloat(round2(f), 'f', 2, 64)
}

// FormatThousands renders f rounded half-to-even to an integer with
// thousands separators, e.g. 21433226 -> "21,433,226".
func FormatThousands(f float64) string {
	r := math.RoundToEven(f)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return strconv.FormatFloat(r, 'f', -1, 64)
	}
	if r >= math.MinInt64 && r < math.MaxInt64 {
		return GroupInt(int64(r))
	}
	return message.NewPrinter(language.English).Sprintf("%.0f", r)
}

// GroupInt renders i with English thousands separators.
func GroupInt(i int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", i)
}

// FormatRound2 renders f rounded to two decimals in its shortest form.
func FormatRound2(f float64) string {
	return strconv.FormatFloat(round2(f), 'f', -1, 64)
}

func round2(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	return math.RoundToEven(f*100) / 100
}
