package ccl

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjo/stocks/types"
)

func TestCompute(t *testing.T) {
	t.Parallel()

	t.Run("implied rate and local total", func(t *testing.T) {
		t.Parallel()

		var (
			src = staticSources(nil, nil,
				map[string]float64{"AAPL": 150},
				map[string]types.Rank{"AAPL": "3-Hold"},
			)

			quotes = []*types.LiveQuote{liveQuote("AAPL", "AAPL", 15000, 10)}
		)

		rows := Compute(context.Background(), src, quotes, noopLogger)

		require.Len(t, rows, 1)

		row := rows[0]

		assert.Equal(t, "AAPL", row.LocalTicker)
		assert.InDelta(t, 1000.0, row.ImpliedRate, 1e-9)
		assert.Equal(t, int64(150000), row.LocalTotal)
		assert.Equal(t, 150.0, row.ForeignPrice)
		assert.Equal(t, types.Rank("3-Hold"), row.Rank)
		assert.Zero(t, row.DeviationPct)
	})

	t.Run("fractional ratio floors local total", func(t *testing.T) {
		t.Parallel()

		var (
			src = staticSources(nil, nil,
				map[string]float64{"BRK-B": 400},
				map[string]types.Rank{"BRK-B": "2-Buy"},
			)

			quotes = []*types.LiveQuote{liveQuote("BRKB", "BRK-B", 20001, 0.5)}
		)

		rows := Compute(context.Background(), src, quotes, noopLogger)

		require.Len(t, rows, 1)
		assert.Equal(t, int64(10000), rows[0].LocalTotal)
		assert.InDelta(t, 25.00125, rows[0].ImpliedRate, 1e-9)
	})

	t.Run("unusable instruments are dropped", func(t *testing.T) {
		t.Parallel()

		var (
			src = &mockSources{
				priceFn: func(_ context.Context, ticker string) (float64, bool, error) {
					switch ticker {
					case "ABSENT":
						return 0, false, nil
					case "ZERO":
						return 0, true, nil
					case "ERR":
						return 0, false, errors.New("upstream down")
					}

					return 100, true, nil
				},
				rankFn: func(_ context.Context, ticker string) types.Rank {
					if ticker == "NORANK" {
						return types.RankNA
					}

					return "1-S Buy"
				},
			}

			quotes = []*types.LiveQuote{
				liveQuote("ZZZ", "OK", 1000, 1),
				liveQuote("AAA", "ABSENT", 1000, 1),
				liveQuote("BBB", "ZERO", 1000, 1),
				liveQuote("CCC", "ERR", 1000, 1),
				liveQuote("DDD", "NORANK", 1000, 1),
				liveQuote("EEE", "OK", 1000, 1),
			}
		)

		rows := Compute(context.Background(), src, quotes, noopLogger)

		require.Len(t, rows, 2)
		assert.Equal(t, "EEE", rows[0].LocalTicker)
		assert.Equal(t, "ZZZ", rows[1].LocalTicker)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		t.Parallel()

		var (
			src = staticSources(nil, nil,
				map[string]float64{"A": 1, "B": 1},
				map[string]types.Rank{"A": "3-Hold", "B": "3-Hold"},
			)

			quotes = []*types.LiveQuote{
				liveQuote("BBB", "B", 10, 1),
				liveQuote("AAA", "A", 10, 1),
			}
		)

		rows := Compute(context.Background(), src, quotes, noopLogger)

		require.Len(t, rows, 2)
		assert.Equal(t, "BBB", quotes[0].LocalTicker)
		assert.Equal(t, "AAA", rows[0].LocalTicker)
	})
}
