package ccl

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/jjo/stocks/types"
)

// Assemble ranks the computed rows by their deviation from the median
// implied rate, lowest (cheapest) first
func Assemble(rows []*types.ResultRow) (*types.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no instruments left after computing", ErrEmptyResult)
	}

	rates := make([]float64, 0, len(rows))
	for _, r := range rows {
		rates = append(rates, r.ImpliedRate)
	}

	var (
		median = quantileNearest(rates, 0.5)
		out    = make([]*types.ResultRow, 0, len(rows))
	)

	for _, r := range rows {
		row := *r
		row.DeviationPct = (row.ImpliedRate/median - 1) * 100

		out = append(out, &row)
	}

	slices.SortStableFunc(out, func(a, b *types.ResultRow) int {
		if c := cmp.Compare(a.DeviationPct, b.DeviationPct); c != 0 {
			return c
		}

		return strings.Compare(a.LocalTicker, b.LocalTicker)
	})

	return &types.Table{
		Rows:   out,
		Median: median,
	}, nil
}
