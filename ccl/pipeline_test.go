package ccl

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjo/stocks/source"
	"github.com/jjo/stocks/types"
)

func TestPipeline_New(t *testing.T) {
	t.Parallel()

	t.Run("invalid quantile", func(t *testing.T) {
		t.Parallel()

		for _, q := range []float64{-0.1, 1.5} {
			_, err := New(&mockSources{}, WithVolumeQuantile(q))

			assert.ErrorIs(t, err, errInvalidQuantile)
		}
	})

	t.Run("quantile bounds", func(t *testing.T) {
		t.Parallel()

		for _, q := range []float64{0, 1} {
			_, err := New(&mockSources{}, WithVolumeQuantile(q))

			assert.NoError(t, err)
		}
	})
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	ratios := []*types.RatioEntry{
		{LocalTicker: "AAPL", ForeignTicker: "AAPL", Ratio: 10},
		{LocalTicker: "DISN", ForeignTicker: "DIS", Ratio: 4},
		{LocalTicker: "XOM", ForeignTicker: "XOM", Ratio: 5},
	}

	t.Run("single instrument", func(t *testing.T) {
		t.Parallel()

		var (
			src = staticSources(
				ratios[:1],
				[]*types.Quote{pesoQuote("AAPL", 15000, 100)},
				map[string]float64{"AAPL": 150},
				map[string]types.Rank{"AAPL": "1-S Buy"},
			)
		)

		p, err := New(src, WithLogger(noopLogger))
		require.NoError(t, err)

		table, err := p.Run(context.Background())
		require.NoError(t, err)

		require.Len(t, table.Rows, 1)

		row := table.Rows[0]

		assert.InDelta(t, 1000.0, row.ImpliedRate, 1e-9)
		assert.Equal(t, int64(150000), row.LocalTotal)
		assert.Zero(t, row.DeviationPct)
		assert.Equal(t, 1000.0, table.Median)
		assert.Equal(t, types.Rank("1-S Buy"), row.Rank)
		assert.Equal(t, "AAPL", row.ForeignTicker)
	})

	t.Run("unknown tickers and absent prices dropped", func(t *testing.T) {
		t.Parallel()

		var (
			src = staticSources(
				ratios,
				[]*types.Quote{
					pesoQuote("AAPL", 15000, 100),
					pesoQuote("DISN", 5000, 100),
					pesoQuote("XOM", 8000, 100),
					pesoQuote("GHOST", 1000, 100),
				},
				map[string]float64{"AAPL": 150, "DIS": 20},
				map[string]types.Rank{"AAPL": "1-S Buy", "DIS": "3-Hold", "XOM": "2-Buy"},
			)
		)

		p, err := New(src, WithNoFilter(true))
		require.NoError(t, err)

		table, err := p.Run(context.Background())
		require.NoError(t, err)

		require.Len(t, table.Rows, 2)

		// AAPL 1000, DISN 1000
		for _, row := range table.Rows {
			assert.NotEqual(t, "XOM", row.LocalTicker)
			assert.NotEqual(t, "GHOST", row.LocalTicker)
			assert.InDelta(t, 1000.0, row.ImpliedRate, 1e-9)
		}
	})

	t.Run("ratio failure is fatal", func(t *testing.T) {
		t.Parallel()

		var (
			quotesCalled bool

			src = &mockSources{
				ratiosFn: func(_ context.Context) ([]*types.RatioEntry, error) {
					return nil, &source.TimeoutError{Err: context.DeadlineExceeded, Source: "ratios"}
				},
				quotesFn: func(_ context.Context) ([]*types.Quote, error) {
					quotesCalled = true

					return nil, nil
				},
			}
		)

		p, err := New(src)
		require.NoError(t, err)

		_, err = p.Run(context.Background())

		assert.ErrorIs(t, err, source.ErrTimeout)
		assert.False(t, quotesCalled)
	})

	t.Run("quote failure is fatal", func(t *testing.T) {
		t.Parallel()

		src := &mockSources{
			ratiosFn: func(_ context.Context) ([]*types.RatioEntry, error) {
				return ratios, nil
			},
			quotesFn: func(_ context.Context) ([]*types.Quote, error) {
				return nil, &source.TransportError{Err: errors.New("connection reset"), Source: "quotes"}
			},
		}

		p, err := New(src)
		require.NoError(t, err)

		_, err = p.Run(context.Background())

		assert.ErrorIs(t, err, source.ErrTransport)
	})

	t.Run("nothing reconciled", func(t *testing.T) {
		t.Parallel()

		src := staticSources(
			ratios,
			[]*types.Quote{pesoQuote("GHOST", 1000, 100)},
			nil,
			nil,
		)

		p, err := New(src)
		require.NoError(t, err)

		_, err = p.Run(context.Background())

		assert.ErrorIs(t, err, ErrEmptyResult)
	})

	t.Run("nothing computed", func(t *testing.T) {
		t.Parallel()

		src := staticSources(
			ratios,
			[]*types.Quote{pesoQuote("AAPL", 15000, 100)},
			map[string]float64{"AAPL": 150},
			nil,
		)

		p, err := New(src)
		require.NoError(t, err)

		_, err = p.Run(context.Background())

		assert.ErrorIs(t, err, ErrEmptyResult)
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		var (
			src = staticSources(
				ratios,
				[]*types.Quote{
					pesoQuote("XOM", 8000, 300),
					pesoQuote("DISN", 5000, 200),
					pesoQuote("AAPL", 15000, 100),
				},
				map[string]float64{"AAPL": 150, "DIS": 20, "XOM": 40},
				map[string]types.Rank{"AAPL": "1-S Buy", "DIS": "3-Hold", "XOM": "2-Buy"},
			)
		)

		p, err := New(src, WithNoFilter(true))
		require.NoError(t, err)

		first, err := p.Run(context.Background())
		require.NoError(t, err)

		second, err := p.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Len(t, first.Rows, 3)
	})
}
