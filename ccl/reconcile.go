package ccl

import (
	"fmt"

	"github.com/jjo/stocks/types"
)

// Resolution is the ratio table data for a single local ticker
type Resolution struct {
	ForeignTicker string
	Ratio         float64
}

// Reconciler maps local tickers to their ratio and foreign ticker
type Reconciler struct {
	index map[string]Resolution
}

// NewReconciler builds a reconciler off the ratio table.
// If a local ticker is listed more than once, the first row wins
func NewReconciler(entries []*types.RatioEntry) *Reconciler {
	r := &Reconciler{
		index: make(map[string]Resolution, len(entries)),
	}

	for _, e := range entries {
		if e == nil || e.Ratio <= 0 {
			continue
		}

		if _, ok := r.index[e.LocalTicker]; ok {
			continue
		}

		r.index[e.LocalTicker] = Resolution{
			ForeignTicker: e.ForeignTicker,
			Ratio:         e.Ratio,
		}
	}

	return r
}

// Len returns the number of distinct local tickers known
func (r *Reconciler) Len() int {
	return len(r.index)
}

// Resolve fetches the ratio and foreign ticker for the local ticker
func (r *Reconciler) Resolve(localTicker string) (Resolution, error) {
	res, ok := r.index[localTicker]
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %s", ErrUnknownTicker, localTicker)
	}

	return res, nil
}

// Reconcile joins the quotes with the ratio table. Quotes for unknown
// tickers are excluded and returned separately. Only the first quote
// of each local ticker is kept, in feed order
func (r *Reconciler) Reconcile(quotes []*types.Quote) ([]*types.LiveQuote, []string) {
	var (
		out     = make([]*types.LiveQuote, 0, len(quotes))
		unknown = make([]string, 0)
		seen    = make(map[string]struct{}, len(quotes))
	)

	for _, q := range quotes {
		if q == nil || q.LocalPrice == 0 {
			continue
		}

		if _, ok := seen[q.LocalTicker]; ok {
			continue
		}

		res, err := r.Resolve(q.LocalTicker)
		if err != nil {
			unknown = append(unknown, q.LocalTicker)

			continue
		}

		seen[q.LocalTicker] = struct{}{}

		out = append(out, &types.LiveQuote{
			Quote:         *q,
			ForeignTicker: res.ForeignTicker,
			Ratio:         res.Ratio,
		})
	}

	return out, unknown
}
