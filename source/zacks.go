package source

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jjo/stocks/types"
)

// ParseRank parses the analyst rank label off the Zacks quote page.
// The label is the text preceding the rank chips, eg. "3-Hold".
// Returns types.RankNA if the page holds no rank
func ParseRank(body []byte) types.Rank {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return types.RankNA
	}

	chip := doc.Find(".rank_chip.rankrect_1").First()
	if chip.Length() == 0 {
		return types.RankNA
	}

	// Only the parent's own text nodes, not the chips
	label := chip.Parent().
		Contents().
		FilterFunction(func(_ int, s *goquery.Selection) bool {
			return goquery.NodeName(s) == "#text"
		}).
		Text()

	label = strings.Join(strings.Fields(label), " ")
	if label == "" {
		return types.RankNA
	}

	return types.Rank(strings.ReplaceAll(label, "Strong ", "S "))
}
