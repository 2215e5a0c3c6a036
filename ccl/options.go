package ccl

import (
	"io"
	"log/slog"
)

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type Option func(p *Pipeline)

// WithLogger specifies the logger for the pipeline
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithVolumeQuantile specifies the liquidity filter quantile.
// Defaults to 0.75
func WithVolumeQuantile(q float64) Option {
	return func(p *Pipeline) {
		p.filter.VolumeQuantile = q
	}
}

// WithNoFilter bypasses the liquidity filter, computing every quote
func WithNoFilter(noFilter bool) Option {
	return func(p *Pipeline) {
		p.filter.NoFilter = noFilter
	}
}

// WithTickers specifies local tickers to always include
func WithTickers(tickers []string) Option {
	return func(p *Pipeline) {
		p.filter.Tickers = tickers
	}
}
