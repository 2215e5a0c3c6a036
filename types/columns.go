package types

import (
	"maps"
	"slices"
)

// IndexColumn is the leading column of every rendered table
const IndexColumn = "ticker"

// Fields returns the row values keyed by column name
func (r *ResultRow) Fields() map[string]any {
	return map[string]any{
		"buy_order_size":    r.BuyOrderSize,
		"change_pct":        r.ChangePct,
		"currency":          r.Currency,
		"deviation_pct":     r.DeviationPct,
		"foreign_price":     r.ForeignPrice,
		"foreign_ticker":    r.ForeignTicker,
		"implied_rate":      r.ImpliedRate,
		"local_price":       r.LocalPrice,
		"local_total":       r.LocalTotal,
		"rank":              r.Rank,
		"ratio":             r.Ratio,
		"sell_order_size":   r.SellOrderSize,
		"settlement_period": r.SettlementPeriod,
		"volume":            r.Volume,
	}
}

// Columns returns the value column names, in lexicographic order.
// The index column is not included
func Columns() []string {
	return slices.Sorted(maps.Keys((&ResultRow{}).Fields()))
}

// Values returns the row values in Columns order
func (r *ResultRow) Values() []any {
	var (
		fields = r.Fields()
		cols   = Columns()
		out    = make([]any, 0, len(cols))
	)

	for _, c := range cols {
		out = append(out, fields[c])
	}

	return out
}
