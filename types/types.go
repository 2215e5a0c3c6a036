package types

import "math"

type Currency string

const (
	CurrencyARS Currency = "Pesos"
	CurrencyUSD Currency = "USD"
)

func (c Currency) String() string {
	return string(c)
}

type Settlement string

const (
	SettlementT0  Settlement = "CI"
	SettlementT24 Settlement = "24hs"
	SettlementT48 Settlement = "48hs"
)

func (s Settlement) String() string {
	return string(s)
}

// Delayed reports if the settlement window is one of the delayed categories
// used for the CCL calculation (better volume than spot)
func (s Settlement) Delayed() bool {
	return s == SettlementT24 || s == SettlementT48
}

// Rank is the analyst rank label of a foreign ticker
type Rank string

// RankNA is the sentinel for an unavailable rank
const RankNA Rank = "N/A"

func (r Rank) String() string {
	return string(r)
}

// Available reports if the rank holds an actual label
func (r Rank) Available() bool {
	return r != "" && r != RankNA
}

// RatioEntry is a single row of the CEDEAR ratio table
type RatioEntry struct {
	LocalTicker   string  `json:"local_ticker"`
	ForeignTicker string  `json:"foreign_ticker"`
	Ratio         float64 `json:"ratio"`
}

// Quote is a single live local quote, as observed in the feed
type Quote struct {
	LocalTicker      string     `json:"local_ticker"`
	SettlementPeriod Settlement `json:"settlement_period"`
	Currency         Currency   `json:"currency"`
	LocalPrice       float64    `json:"local_price"`
	Volume           float64    `json:"volume"`
	BuyOrderSize     float64    `json:"buy_order_size"`
	SellOrderSize    float64    `json:"sell_order_size"`
	ChangePct        float64    `json:"change_pct"`
}

// LiveQuote is a quote reconciled against the ratio table
type LiveQuote struct {
	Quote

	ForeignTicker string  `json:"foreign_ticker"`
	Ratio         float64 `json:"ratio"`
}

// ResultRow is a single computed CCL row
type ResultRow struct {
	LiveQuote

	Rank         Rank    `json:"rank"`
	ImpliedRate  float64 `json:"implied_rate"`
	LocalTotal   int64   `json:"local_total"`
	ForeignPrice float64 `json:"foreign_price"`
	DeviationPct float64 `json:"deviation_pct"`
}

// ImpliedRate returns the ARS/USD rate implied by the local and foreign prices
func ImpliedRate(localPrice, foreignPrice, ratio float64) float64 {
	return localPrice / foreignPrice * ratio
}

// LocalTotal returns the local price of a full foreign share equivalent, floored
func LocalTotal(localPrice, ratio float64) int64 {
	return int64(math.Floor(localPrice * ratio))
}

// Table is the final, ranked CCL result set
type Table struct {
	Rows   []*ResultRow `json:"rows"`
	Median float64      `json:"median"`
}
