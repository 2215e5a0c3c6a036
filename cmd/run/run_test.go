package run

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjo/stocks/render"
	"github.com/jjo/stocks/types"
)

func TestRun_WriterFor(t *testing.T) {
	t.Parallel()

	table := &types.Table{
		Median: 1000,
		Rows: []*types.ResultRow{
			{
				LiveQuote: types.LiveQuote{
					Quote: types.Quote{
						LocalTicker: "AAPL",
						LocalPrice:  15000,
					},
					ForeignTicker: "AAPL",
					Ratio:         10,
				},
				Rank:         "1-S Buy",
				ImpliedRate:  1000,
				ForeignPrice: 150,
			},
		},
	}

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		_, err := writerFor("yaml")

		assert.ErrorIs(t, err, errInvalidFormat)
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		write, err := writerFor(formatText)
		require.NoError(t, err)

		var buf bytes.Buffer

		require.NoError(t, write(&buf, table))
		assert.True(t, strings.HasSuffix(buf.String(), "median: 1000.00\n"))
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		write, err := writerFor(formatJSON)
		require.NoError(t, err)

		var buf bytes.Buffer

		require.NoError(t, write(&buf, table))

		var widget render.WidgetTable

		require.NoError(t, json.Unmarshal(buf.Bytes(), &widget))
		assert.Equal(t, "AAPL", widget.Data[0][0])
	})

	t.Run("html", func(t *testing.T) {
		t.Parallel()

		write, err := writerFor(formatHTML)
		require.NoError(t, err)

		var buf bytes.Buffer

		require.NoError(t, write(&buf, table))
		assert.Contains(t, buf.String(), "<td>AAPL</td>")
	})
}
