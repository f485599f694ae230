// Package format turns a query result into the two table views shown on a
// documentation page: an HTML table and a plain Markdown pipe table.
//
// Numeric formatting is applied once to produce a Table of display strings;
// both renderings consume that same Table.
package format

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/docsql/pkg/core"
)

// Alignment classes used by the page stylesheet.
const (
	AlignRight = "align-right"
	AlignLeft  = "align-left"
)

// Column describes one displayed column.
type Column struct {
	Name    string
	Label   string
	Numeric bool
}

// Align returns the CSS alignment class for the column.
func (c Column) Align() string {
	if c.Numeric {
		return AlignRight
	}
	return AlignLeft
}

// Table is a result with every cell already rendered to its display text.
type Table struct {
	Columns []Column
	Rows    [][]string
}

// Result is the formatted output for one query.
type Result struct {
	Table   Table
	HTML    string
	Raw     string
	Numeric map[string]bool
}

// Label humanizes a column name: underscores become spaces, words are title-cased.
func Label(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r == '_' {
			r = ' '
		}
		out = append(out, r)
	}
	return cases.Title(language.English).String(string(out))
}

// Transform classifies the columns of t and renders every cell to text.
func Transform(t *core.ResultTable) Table {
	numeric := Classify(t)

	out := Table{
		Columns: make([]Column, len(t.Columns)),
		Rows:    make([][]string, len(t.Rows)),
	}
	rules := make([]rule, len(t.Columns))
	for i, name := range t.Columns {
		out.Columns[i] = Column{Name: name, Label: Label(name), Numeric: numeric[i]}
		if numeric[i] {
			rules[i] = ruleFor(name)
		}
	}

	for r, row := range t.Rows {
		cells := make([]string, len(row))
		for c, v := range row {
			cells[c] = formatCell(v, rules[c])
		}
		out.Rows[r] = cells
	}
	return out
}

// formatCell renders one value. Nulls are empty and non-numbers pass through.
func formatCell(v core.Value, r rule) string {
	if !v.IsNumber() || r == ruleNone {
		return v.String()
	}
	switch r {
	case ruleFixed2:
		return FormatFixed2(v.Float)
	case ruleThousands:
		if v.IsInt {
			return GroupInt(v.Int)
		}
		return FormatThousands(v.Float)
	default:
		if v.IsInt {
			return v.String()
		}
		return FormatRound2(v.Float)
	}
}

// Format produces both table views for t.
func Format(t *core.ResultTable) (*Result, error) {
	tbl := Transform(t)

	html, err := RenderHTML(tbl)
	if err != nil {
		return nil, err
	}

	numeric := make(map[string]bool)
	for _, c := range tbl.Columns {
		if c.Numeric {
			numeric[c.Name] = true
		}
	}

	return &Result{
		Table:   tbl,
		HTML:    html,
		Raw:     RenderRaw(tbl),
		Numeric: numeric,
	}, nil
}
