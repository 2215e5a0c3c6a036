//nolint:tagliatelle // Yahoo Finance API uses camel case
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type yahooResponse struct {
	QuoteSummary struct {
		Result []yahooResult `json:"result"`
	} `json:"quoteSummary"`
}

type yahooResult struct {
	FinancialData struct {
		CurrentPrice struct {
			Raw *float64 `json:"raw"`
		} `json:"currentPrice"`
	} `json:"financialData"`
}

// ParsePrice parses the Yahoo Finance quote summary, returning
// the current price of the first result holding one.
// Returns false if the summary carries no price
func ParsePrice(body []byte) (float64, bool, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return 0, false, nil
	}

	var resp yahooResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, false, fmt.Errorf("unable to decode quote summary: %w", err)
	}

	for _, res := range resp.QuoteSummary.Result {
		if raw := res.FinancialData.CurrentPrice.Raw; raw != nil {
			return *raw, true, nil
		}
	}

	return 0, false, nil
}
