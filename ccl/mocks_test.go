package ccl

import (
	"context"

	"github.com/jjo/stocks/types"
)

type (
	ratiosDelegate func(context.Context) ([]*types.RatioEntry, error)
	quotesDelegate func(context.Context) ([]*types.Quote, error)
	priceDelegate  func(context.Context, string) (float64, bool, error)
	rankDelegate   func(context.Context, string) types.Rank
)

type mockSources struct {
	ratiosFn ratiosDelegate
	quotesFn quotesDelegate
	priceFn  priceDelegate
	rankFn   rankDelegate
}

func (m *mockSources) Ratios(ctx context.Context) ([]*types.RatioEntry, error) {
	if m.ratiosFn != nil {
		return m.ratiosFn(ctx)
	}

	return nil, nil
}

func (m *mockSources) Quotes(ctx context.Context) ([]*types.Quote, error) {
	if m.quotesFn != nil {
		return m.quotesFn(ctx)
	}

	return nil, nil
}

func (m *mockSources) ForeignPrice(ctx context.Context, ticker string) (float64, bool, error) {
	if m.priceFn != nil {
		return m.priceFn(ctx, ticker)
	}

	return 0, false, nil
}

func (m *mockSources) Rank(ctx context.Context, ticker string) types.Rank {
	if m.rankFn != nil {
		return m.rankFn(ctx, ticker)
	}

	return types.RankNA
}

// staticSources returns sources serving fixed upstream payloads
func staticSources(
	ratios []*types.RatioEntry,
	quotes []*types.Quote,
	prices map[string]float64,
	ranks map[string]types.Rank,
) *mockSources {
	return &mockSources{
		ratiosFn: func(_ context.Context) ([]*types.RatioEntry, error) {
			return ratios, nil
		},
		quotesFn: func(_ context.Context) ([]*types.Quote, error) {
			return quotes, nil
		},
		priceFn: func(_ context.Context, ticker string) (float64, bool, error) {
			price, ok := prices[ticker]

			return price, ok, nil
		},
		rankFn: func(_ context.Context, ticker string) types.Rank {
			rank, ok := ranks[ticker]
			if !ok {
				return types.RankNA
			}

			return rank
		},
	}
}

func pesoQuote(ticker string, price, volume float64) *types.Quote {
	return &types.Quote{
		LocalTicker:      ticker,
		SettlementPeriod: types.SettlementT24,
		Currency:         types.CurrencyARS,
		LocalPrice:       price,
		Volume:           volume,
	}
}

func liveQuote(ticker, foreign string, price, ratio float64) *types.LiveQuote {
	return &types.LiveQuote{
		Quote:         *pesoQuote(ticker, price, 0),
		ForeignTicker: foreign,
		Ratio:         ratio,
	}
}
