package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/jjo/stocks/types"
)

// Text writes the table as aligned plain text, followed by the median
func Text(w io.Writer, table *types.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	if _, err := fmt.Fprintln(tw, strings.Join(header(), "\t")+"\t"); err != nil {
		return fmt.Errorf("unable to write header, %w", err)
	}

	for _, row := range table.Rows {
		if _, err := fmt.Fprintln(tw, strings.Join(cells(row), "\t")+"\t"); err != nil {
			return fmt.Errorf("unable to write row, %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("unable to flush table, %w", err)
	}

	if _, err := fmt.Fprintf(
		w,
		"\nmedian: %s\n",
		decimal.NewFromFloat(table.Median).StringFixed(places),
	); err != nil {
		return fmt.Errorf("unable to write median, %w", err)
	}

	return nil
}
