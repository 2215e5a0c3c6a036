package ccl

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jjo/stocks/types"
)

// foreignTickers returns the distinct foreign tickers referenced by the quotes,
// in order of first appearance
func foreignTickers(quotes []*types.LiveQuote) []string {
	var (
		seen = make(map[string]struct{}, len(quotes))
		out  = make([]string, 0, len(quotes))
	)

	for _, q := range quotes {
		if _, ok := seen[q.ForeignTicker]; ok {
			continue
		}

		seen[q.ForeignTicker] = struct{}{}
		out = append(out, q.ForeignTicker)
	}

	return out
}

// WarmUp concurrently fetches the price and rank of every distinct foreign
// ticker, and waits for all of them to complete. Results land in the
// sources' cache; individual failures are logged and otherwise ignored
func WarmUp(ctx context.Context, src Sources, quotes []*types.LiveQuote, logger *slog.Logger) {
	var (
		tickers = foreignTickers(quotes)
		group   errgroup.Group
	)

	logger.Info("warming up foreign data", "tickers", len(tickers))

	for _, ticker := range tickers {
		group.Go(func() error {
			if _, _, err := src.ForeignPrice(ctx, ticker); err != nil {
				logger.Warn(
					"unable to fetch foreign price",
					"ticker", ticker,
					"err", err,
				)
			}

			return nil
		})

		group.Go(func() error {
			src.Rank(ctx, ticker)

			return nil
		})
	}

	_ = group.Wait() //nolint:errcheck // workers never fail

	logger.Info("warm up done", "tickers", len(tickers))
}
