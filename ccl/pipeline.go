package ccl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jjo/stocks/types"
)

// Pipeline is the fetch-join-compute CCL pipeline
type Pipeline struct {
	sources Sources
	logger  *slog.Logger

	filter FilterOptions
}

// New creates a new CCL pipeline on top of the given sources
func New(sources Sources, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		sources: sources,
		logger:  noopLogger,
		filter: FilterOptions{
			VolumeQuantile: DefaultVolumeQuantile,
		},
	}

	// Apply the options
	for _, opt := range opts {
		opt(p)
	}

	if p.filter.VolumeQuantile < 0 || p.filter.VolumeQuantile > 1 {
		return nil, errInvalidQuantile
	}

	return p, nil
}

// Run runs the pipeline end to end, returning the ranked CCL table.
// A failing ratio or quote source aborts the run, as does an empty
// result (ErrEmptyResult). Per-instrument failures only drop the instrument
func (p *Pipeline) Run(ctx context.Context) (*types.Table, error) {
	// The ratio table must be fully resolved before reconciling any quote
	ratios, err := p.sources.Ratios(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch ratios, %w", err)
	}

	reconciler := NewReconciler(ratios)

	quotes, err := p.sources.Quotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch quotes, %w", err)
	}

	live, unknown := reconciler.Reconcile(quotes)
	if len(unknown) > 0 {
		p.logger.Debug(
			"skipped quotes with unknown ratio",
			"tickers", unknown,
		)
	}

	p.logger.Info(
		"reconciled quotes",
		"ratios", reconciler.Len(),
		"quotes", len(quotes),
		"reconciled", len(live),
	)

	filtered, err := Filter(live, p.filter)
	if err != nil {
		return nil, err
	}

	p.logger.Info(
		"filtered tickers",
		"count", len(filtered),
		"quantile", p.filter.VolumeQuantile,
		"no_filter", p.filter.NoFilter,
		"include", p.filter.Tickers,
	)

	WarmUp(ctx, p.sources, filtered, p.logger)

	rows := Compute(ctx, p.sources, filtered, p.logger)

	table, err := Assemble(rows)
	if err != nil {
		return nil, err
	}

	p.logger.Info(
		"computed CCL table",
		"rows", len(table.Rows),
		"median", table.Median,
	)

	return table, nil
}
