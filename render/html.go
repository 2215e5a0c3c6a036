package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/shopspring/decimal"

	"github.com/jjo/stocks/types"
)

//go:embed templates/*.html
var templates embed.FS

var rootTemplate = template.Must(template.ParseFS(templates, "templates/root.html"))

type page struct {
	Header []string
	Rows   [][]string
	Median string
}

// HTML writes the table as a standalone HTML page
func HTML(w io.Writer, table *types.Table) error {
	p := page{
		Header: header(),
		Rows:   make([][]string, 0, len(table.Rows)),
		Median: decimal.NewFromFloat(table.Median).StringFixed(places),
	}

	for _, row := range table.Rows {
		p.Rows = append(p.Rows, cells(row))
	}

	if err := rootTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("unable to render page, %w", err)
	}

	return nil
}
