package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/leapstack-labs/docsql/internal/format"
	"github.com/leapstack-labs/docsql/pkg/core"
)

func renderResults(w io.Writer, t *core.ResultTable, outFormat string) error {
	if outFormat == formatJSON {
		return renderJSON(w, t)
	}

	res, err := format.Format(t)
	if err != nil {
		return err
	}

	switch outFormat {
	case formatMarkdown, "md":
		_, err = fmt.Fprintln(w, res.Raw)
		return err
	case formatHTML:
		_, err = fmt.Fprintln(w, res.HTML)
		return err
	case formatTable, "":
		return renderTable(w, res.Table)
	default:
		return fmt.Errorf("unknown format %q (expected table, markdown, html or json)", outFormat)
	}
}

func renderTable(w io.Writer, t format.Table) error {
	if len(t.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	header := make(table.Row, len(t.Columns))
	configs := make([]table.ColumnConfig, 0, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Label
		if col.Numeric {
			configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight})
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, cells := range t.Rows {
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		tw.AppendRow(row)
	}

	tw.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(t.Rows))
	return nil
}

// jsonResult is the JSON shape of a query result. Values are unformatted.
type jsonResult struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

func renderJSON(w io.Writer, t *core.ResultTable) error {
	out := jsonResult{Columns: t.Columns, Rows: make([]map[string]any, 0, len(t.Rows))}
	for _, values := range t.Rows {
		row := make(map[string]any, len(values))
		for i, v := range values {
			row[t.Columns[i]] = v.Any()
		}
		out.Rows = append(out.Rows, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
