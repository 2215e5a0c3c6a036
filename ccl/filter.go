package ccl

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jjo/stocks/types"
)

// DefaultVolumeQuantile is the default liquidity threshold quantile
const DefaultVolumeQuantile = 0.75

// FilterOptions is the liquidity filter configuration
type FilterOptions struct {
	// Tickers are always included, regardless of liquidity
	Tickers []string

	// VolumeQuantile is the volume / order size quantile threshold
	VolumeQuantile float64

	// NoFilter bypasses the liquidity filter
	NoFilter bool
}

// Filter selects the quotes worth computing. A quote is included if it has
// a positive price, and either its volume or order sizes are at or above
// the quantile threshold, or its ticker is explicitly requested.
// Thresholds are computed over the whole quote set.
// The result is sorted by local ticker
func Filter(quotes []*types.LiveQuote, opts FilterOptions) ([]*types.LiveQuote, error) {
	var out []*types.LiveQuote

	if opts.NoFilter {
		out = slices.Clone(quotes)
	} else {
		out = filterLiquid(quotes, opts)
	}

	slices.SortStableFunc(out, func(a, b *types.LiveQuote) int {
		return strings.Compare(a.LocalTicker, b.LocalTicker)
	})

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no instruments left for q >= %.2f", ErrEmptyResult, opts.VolumeQuantile)
	}

	return out, nil
}

func filterLiquid(quotes []*types.LiveQuote, opts FilterOptions) []*types.LiveQuote {
	var (
		volumes = make([]float64, 0, len(quotes))
		buys    = make([]float64, 0, len(quotes))
		sells   = make([]float64, 0, len(quotes))
	)

	for _, q := range quotes {
		volumes = append(volumes, q.Volume)
		buys = append(buys, q.BuyOrderSize)
		sells = append(sells, q.SellOrderSize)
	}

	var (
		minVolume = quantileLinear(volumes, opts.VolumeQuantile)
		minBuy    = quantileLinear(buys, opts.VolumeQuantile)
		minSell   = quantileLinear(sells, opts.VolumeQuantile)

		include = make(map[string]struct{}, len(opts.Tickers))
		out     = make([]*types.LiveQuote, 0, len(quotes))
	)

	for _, t := range opts.Tickers {
		if t = strings.TrimSpace(t); t != "" {
			include[t] = struct{}{}
		}
	}

	for _, q := range quotes {
		if q.LocalPrice <= 0 {
			continue
		}

		_, explicit := include[q.LocalTicker]

		if q.Volume >= minVolume ||
			q.BuyOrderSize >= minBuy ||
			q.SellOrderSize >= minSell ||
			explicit {
			out = append(out, q)
		}
	}

	return out
}
