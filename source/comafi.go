package source

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jjo/stocks/types"
)

var (
	errInvalidRatio  = errors.New("invalid ratio")
	errMissingColumn = errors.New("missing ratio table column")
	errNoRatios      = errors.New("no ratio rows found")
)

// ratio table header names (first word only), ES -> field
var ratioColumns = map[string]string{
	"simbolo": "ticker",
	"símbolo": "ticker",
	"trading": "foreign",
	"ratio":   "ratio",
}

// ParseRatio parses an "X:Y" ratio string as X/Y
func ParseRatio(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w %q", errInvalidRatio, s)
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", errInvalidRatio, s, err)
	}

	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", errInvalidRatio, s, err)
	}

	if x <= 0 || y <= 0 {
		return 0, fmt.Errorf("%w %q (must be positive)", errInvalidRatio, s)
	}

	return x / y, nil
}

// ParseRatios parses the CEDEAR ratio table page.
// Entries are returned in table row order
func ParseRatios(r io.Reader) ([]*types.RatioEntry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to construct query doc: %w", err)
	}

	// Single table in page
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, errNoRatios
	}

	header := table.Find("thead tr").First()
	if header.Length() == 0 {
		header = table.Find("tr").First()
	}

	index := make(map[string]int, len(ratioColumns))

	header.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		fields := strings.Fields(cell.Text())
		if len(fields) == 0 {
			return
		}

		name, ok := ratioColumns[strings.ToLower(fields[0])]
		if !ok {
			return
		}

		if _, seen := index[name]; !seen {
			index[name] = i
		}
	})

	for _, name := range []string{"ticker", "foreign", "ratio"} {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", errMissingColumn, name)
		}
	}

	entries := make([]*types.RatioEntry, 0, 256)

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return // header row
		}

		cell := func(name string) string {
			return strings.TrimSpace(cells.Eq(index[name]).Text())
		}

		var (
			ticker  = cell("ticker")
			foreign = cell("foreign")
		)

		if ticker == "" || foreign == "" {
			return
		}

		ratio, err := ParseRatio(cell("ratio"))
		if err != nil {
			return
		}

		entries = append(entries, &types.RatioEntry{
			LocalTicker:   ticker,
			ForeignTicker: foreign,
			Ratio:         ratio,
		})
	})

	if len(entries) == 0 {
		return nil, errNoRatios
	}

	return entries, nil
}
