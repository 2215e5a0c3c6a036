package ccl

import (
	"context"

	"github.com/jjo/stocks/types"
)

// Sources is the set of upstream data sources feeding the pipeline.
// Implementations are expected to memoize their results
type Sources interface {
	// Ratios fetches the CEDEAR ratio table, in source row order
	Ratios(context.Context) ([]*types.RatioEntry, error)

	// Quotes fetches the live local quotes
	Quotes(context.Context) ([]*types.Quote, error)

	// ForeignPrice fetches the latest price for the foreign ticker.
	// Returns false if the upstream has no price for it
	ForeignPrice(context.Context, string) (float64, bool, error)

	// Rank fetches the analyst rank for the foreign ticker,
	// or types.RankNA if unavailable
	Rank(context.Context, string) types.Rank
}
