package render

import "github.com/jjo/stocks/types"

// WidgetColumn is a single column definition of the tabular widget
type WidgetColumn struct {
	Title string `json:"title"`
}

// WidgetTable is the tabular widget JSON shape
type WidgetTable struct {
	Columns []WidgetColumn `json:"columns"`
	Data    [][]any        `json:"data"`
}

// Widget converts the table into the tabular widget shape.
// Every data row leads with the local ticker, followed by the values
// in column order. Floats are rounded to two decimals
func Widget(table *types.Table) *WidgetTable {
	var (
		titles = header()
		out    = &WidgetTable{
			Columns: make([]WidgetColumn, 0, len(titles)),
			Data:    make([][]any, 0, len(table.Rows)),
		}
	)

	for _, title := range titles {
		out.Columns = append(out.Columns, WidgetColumn{Title: title})
	}

	for _, row := range table.Rows {
		values := row.Values()

		data := make([]any, 0, len(values)+1)
		data = append(data, row.LocalTicker)

		for _, v := range values {
			data = append(data, round(v))
		}

		out.Data = append(out.Data, data)
	}

	return out
}
