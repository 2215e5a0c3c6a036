package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/jjo/stocks/cache"
	"github.com/jjo/stocks/types"
)

const (
	RatiosTTL = time.Hour        // ratios change rarely
	QuotesTTL = time.Minute      // near real-time market data
	PriceTTL  = time.Minute      // near real-time market data
	RankTTL   = 30 * time.Minute // the rank changes slowly

	// FailureTTL bounds how long a failed price / rank lookup is remembered,
	// so a single run never fetches the same failing instrument twice
	FailureTTL = 30 * time.Second
)

const (
	ratiosTimeout = 10 * time.Second
	quotesTimeout = 30 * time.Second
	priceTimeout  = 30 * time.Second
	rankTimeout   = 30 * time.Second
)

// Endpoints are the upstream source URLs. Price and Rank are
// format strings, taking the foreign ticker
type Endpoints struct {
	QuotesParams url.Values
	Ratios       string
	Quotes       string
	Price        string
	Rank         string
}

// DefaultEndpoints returns the production upstream endpoints
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Ratios: "https://www.comafi.com.ar/2254-CEADEAR-SHARES.note.aspx",
		Quotes: "https://www.byma.com.ar/wp-admin/admin-ajax.php",
		QuotesParams: url.Values{
			"action":   []string{"get_panel"},
			"panel_id": []string{"5"},
		},
		Price: "https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s",
		Rank:  "https://www.zacks.com/stock/quote/%s",
	}
}

// Sources exposes the memoized upstream data sources
type Sources struct {
	client *Client
	memo   *cache.Memo
	logger *slog.Logger

	endpoints Endpoints
}

// NewSources creates the memoized data sources on top of the client
func NewSources(client *Client, memo *cache.Memo, opts ...SourcesOption) *Sources {
	s := &Sources{
		client:    client,
		memo:      memo,
		logger:    noopLogger,
		endpoints: DefaultEndpoints(),
	}

	// Apply the options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Ratios fetches the CEDEAR ratio table
func (s *Sources) Ratios(ctx context.Context) ([]*types.RatioEntry, error) {
	return cache.Memoize(ctx, s.memo, "ratios", RatiosTTL, func(ctx context.Context) ([]*types.RatioEntry, error) {
		s.logger.Info("fetching ratios", "url", s.endpoints.Ratios)

		body, err := s.client.Fetch(ctx, Request{
			Source:  "ratios",
			URL:     s.endpoints.Ratios,
			Timeout: ratiosTimeout,
		})
		if err != nil {
			return nil, err
		}

		entries, err := ParseRatios(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("unable to parse ratios: %w", err)
		}

		s.logger.Info("fetched ratios", "entries", len(entries))

		return entries, nil
	})
}

// Quotes fetches the live local quotes
func (s *Sources) Quotes(ctx context.Context) ([]*types.Quote, error) {
	return cache.Memoize(ctx, s.memo, "quotes", QuotesTTL, func(ctx context.Context) ([]*types.Quote, error) {
		s.logger.Info("fetching quotes", "url", s.endpoints.Quotes)

		body, err := s.client.Fetch(ctx, Request{
			Source:  "quotes",
			URL:     s.endpoints.Quotes,
			Params:  s.endpoints.QuotesParams,
			Timeout: quotesTimeout,
		})
		if err != nil {
			return nil, err
		}

		quotes, err := ParseQuotes(body)
		if err != nil {
			return nil, fmt.Errorf("unable to parse quotes: %w", err)
		}

		s.logger.Info("fetched quotes", "entries", len(quotes))

		if len(quotes) == 0 {
			s.logger.Warn("zero quotes fetched, market not yet open?")
		}

		return quotes, nil
	})
}

// foreignPrice is the cached price lookup, absence and failure included
type foreignPrice struct {
	Price   float64 `json:"price"`
	Found   bool    `json:"found"`
	Error   string  `json:"error,omitempty"`
	Timeout bool    `json:"timeout,omitempty"`
}

// ForeignPrice fetches the latest price of the foreign ticker.
// Returns false if the upstream has no price for it.
// Fetch failures are remembered for FailureTTL, and reported as errors
func (s *Sources) ForeignPrice(ctx context.Context, ticker string) (float64, bool, error) {
	key := "price:" + strings.ToUpper(ticker)

	res, err := cache.MemoizeFunc(ctx, s.memo, key, func(ctx context.Context) (foreignPrice, time.Duration, error) {
		body, err := s.client.Fetch(ctx, Request{
			Source:  "price",
			URL:     fmt.Sprintf(s.endpoints.Price, url.PathEscape(ticker)),
			Params:  url.Values{"modules": []string{"financialData"}},
			Timeout: priceTimeout,
		})
		if err != nil {
			return foreignPrice{
				Error:   err.Error(),
				Timeout: errors.Is(err, ErrTimeout),
			}, FailureTTL, nil
		}

		price, found, err := ParsePrice(body)
		if err != nil {
			return foreignPrice{}, 0, fmt.Errorf("unable to parse price for %s: %w", ticker, err)
		}

		s.logger.Debug("fetched price", "ticker", ticker, "price", price, "found", found)

		return foreignPrice{Price: price, Found: found}, PriceTTL, nil
	})
	if err != nil {
		return 0, false, err
	}

	if res.Error != "" {
		kind := ErrTransport
		if res.Timeout {
			kind = ErrTimeout
		}

		return 0, false, fmt.Errorf("%w: price for %s: %s", kind, ticker, res.Error)
	}

	return res.Price, res.Found, nil
}

// Rank fetches the analyst rank of the foreign ticker. It never fails:
// transport failures and unparseable pages yield types.RankNA.
// Failures are remembered for FailureTTL, parse misses for RankTTL
func (s *Sources) Rank(ctx context.Context, ticker string) types.Rank {
	key := "rank:" + strings.ToUpper(ticker)

	rank, err := cache.MemoizeFunc(ctx, s.memo, key, func(ctx context.Context) (types.Rank, time.Duration, error) {
		body, err := s.client.Fetch(ctx, Request{
			Source:  "rank",
			URL:     fmt.Sprintf(s.endpoints.Rank, url.PathEscape(ticker)),
			Timeout: rankTimeout,
		})
		if err != nil {
			s.logger.Warn(
				"unable to fetch rank",
				"ticker", ticker,
				"err", err,
			)

			return types.RankNA, FailureTTL, nil
		}

		rank := ParseRank(body)

		s.logger.Debug("fetched rank", "ticker", ticker, "rank", rank)

		return rank, RankTTL, nil
	})
	if err != nil {
		// The caller gave up waiting
		return types.RankNA
	}

	return rank
}
