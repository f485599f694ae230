package format

import (
	"html/template"
	"strings"
)

type htmlCell struct {
	Align string
	Text  string
}

type htmlView struct {
	Columns []Column
	Rows    [][]htmlCell
}

var htmlTemplate = template.Must(template.New("table").Parse(`<table>
<thead>
<tr>
{{range .Columns}}<th class="{{.Align}}">{{.Label}}</th>
{{end}}</tr>
</thead>
<tbody>
{{range .Rows}}<tr>
{{range .}}<td class="{{.Align}}">{{.Text}}</td>
{{end}}</tr>
{{end}}</tbody>
</table>`))

// RenderHTML renders t as an HTML table with per-column alignment classes.
// Labels and cell text are escaped.
func RenderHTML(t Table) (string, error) {
	view := htmlView{Columns: t.Columns, Rows: make([][]htmlCell, len(t.Rows))}
	for i, row := range t.Rows {
		cells := make([]htmlCell, len(row))
		for j, text := range row {
			cells[j] = htmlCell{Align: t.Columns[j].Align(), Text: text}
		}
		view.Rows[i] = cells
	}

	var sb strings.Builder
	if err := htmlTemplate.Execute(&sb, view); err != nil {
		return "", err
	}
	return sb.String(), nil
}
