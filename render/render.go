package render

import (
	"github.com/shopspring/decimal"

	"github.com/jjo/stocks/types"
)

// places is the number of decimal places shown for float values
const places = 2

// round rounds float values for presentation, leaving the rest as-is
func round(v any) any {
	f, ok := v.(float64)
	if !ok {
		return v
	}

	return decimal.NewFromFloat(f).Round(places).InexactFloat64()
}

// format returns the presentation string of a single value
func format(v any) string {
	switch value := v.(type) {
	case float64:
		return decimal.NewFromFloat(value).StringFixed(places)
	case int64:
		return decimal.NewFromInt(value).String()
	case interface{ String() string }:
		return value.String()
	case string:
		return value
	default:
		return ""
	}
}

// header returns the rendered column titles, index column first
func header() []string {
	return append([]string{types.IndexColumn}, types.Columns()...)
}

// cells returns the rendered row, index column first
func cells(row *types.ResultRow) []string {
	values := row.Values()

	out := make([]string, 0, len(values)+1)
	out = append(out, row.LocalTicker)

	for _, v := range values {
		out = append(out, format(v))
	}

	return out
}
