package ccl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/jjo/stocks/types"
)

// Compute computes the implied rate of every quote, in local ticker order.
// Quotes without a usable foreign price or rank are dropped
func Compute(
	ctx context.Context,
	src Sources,
	quotes []*types.LiveQuote,
	logger *slog.Logger,
) []*types.ResultRow {
	sorted := slices.Clone(quotes)
	slices.SortStableFunc(sorted, func(a, b *types.LiveQuote) int {
		return strings.Compare(a.LocalTicker, b.LocalTicker)
	})

	rows := make([]*types.ResultRow, 0, len(sorted))

	for _, q := range sorted {
		price, found, err := src.ForeignPrice(ctx, q.ForeignTicker)
		if err != nil || !found || price == 0 {
			logger.Debug(
				"dropping instrument, no foreign price",
				"ticker", q.LocalTicker,
				"foreign_ticker", q.ForeignTicker,
				"err", err,
			)

			continue
		}

		rank := src.Rank(ctx, q.ForeignTicker)
		if !rank.Available() {
			logger.Debug(
				"dropping instrument, no rank",
				"ticker", q.LocalTicker,
				"foreign_ticker", q.ForeignTicker,
			)

			continue
		}

		rows = append(rows, &types.ResultRow{
			LiveQuote:    *q,
			Rank:         rank,
			ImpliedRate:  types.ImpliedRate(q.LocalPrice, price, q.Ratio),
			LocalTotal:   types.LocalTotal(q.LocalPrice, q.Ratio),
			ForeignPrice: price,
		})
	}

	return rows
}
