//nolint:tagliatelle // BYMA API uses its own casing
package source

import (
	"encoding/json"
	"fmt"

	"github.com/jjo/stocks/types"
)

type bymaResponse struct {
	Quotes []bymaQuote `json:"Cotizaciones"`
}

type bymaQuote struct {
	Symbol       string  `json:"Simbolo"`
	Settlement   string  `json:"Vencimiento"`
	Currency     string  `json:"Tipo_Liquidacion"`
	Last         float64 `json:"Ultimo"`
	Volume       float64 `json:"Volumen_Nominal"`
	BuyQuantity  float64 `json:"Cantidad_Nominal_Compra"`
	SellQuantity float64 `json:"Cantidad_Nominal_Venta"`
	Change       float64 `json:"Variacion"`
}

// ParseQuotes parses the BYMA live quotes panel. Only quotes with a
// non-zero last price, delayed settlement and peso currency are kept
func ParseQuotes(body []byte) ([]*types.Quote, error) {
	var resp bymaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unable to decode quotes: %w", err)
	}

	out := make([]*types.Quote, 0, len(resp.Quotes))

	for _, q := range resp.Quotes {
		var (
			settlement = types.Settlement(q.Settlement)
			currency   = types.Currency(q.Currency)
		)

		// Skip tickers w/o value, spot settlement and non-peso quotes
		if q.Last == 0 || !settlement.Delayed() || currency != types.CurrencyARS {
			continue
		}

		out = append(out, &types.Quote{
			LocalTicker:      q.Symbol,
			SettlementPeriod: settlement,
			Currency:         currency,
			LocalPrice:       q.Last,
			Volume:           q.Volume,
			BuyOrderSize:     q.BuyQuantity,
			SellOrderSize:    q.SellQuantity,
			ChangePct:        q.Change,
		})
	}

	return out, nil
}
