package refresh

import (
	"log/slog"
	"time"
)

type Option func(r *Refresher)

// WithLogger specifies the logger for the refresher
func WithLogger(l *slog.Logger) Option {
	return func(r *Refresher) {
		r.logger = l
	}
}

// PipelineOption configures a PipelineJob
type PipelineOption func(p *PipelineJob)

// WithRetryDelay specifies the delay before the first retry of a failed
// pipeline run. Consecutive failures double it, up to the minimum interval.
// Defaults to 10s
func WithRetryDelay(d time.Duration) PipelineOption {
	return func(p *PipelineJob) {
		p.retryDelay = d
	}
}

// WithRunTimeout bounds a single pipeline run.
// Defaults to the maximum interval
func WithRunTimeout(d time.Duration) PipelineOption {
	return func(p *PipelineJob) {
		p.runTimeout = d
	}
}

// WithJobLogger specifies the logger for the pipeline job
func WithJobLogger(l *slog.Logger) PipelineOption {
	return func(p *PipelineJob) {
		p.logger = l
	}
}
