package refresh

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jjo/stocks/types"
)

const (
	pipelineJobName   = "ccl-pipeline"
	defaultRetryDelay = 10 * time.Second
)

// errEmptyTable is returned when a run completes without a single row,
// which only happens while the quote sources are down
var errEmptyTable = errors.New("pipeline produced an empty table")

// Runner computes a fresh CCL table
type Runner interface {
	Run(context.Context) (*types.Table, error)
}

// PipelineJob re-runs the CCL pipeline so the upstream caches stay warm.
// Successful runs are spaced by a random period within [min, max], so
// instances sharing a cache do not hit the sources in lockstep.
// Failed runs are retried with a doubling delay, capped at min
type PipelineJob struct {
	runner Runner
	logger *slog.Logger

	minInterval time.Duration
	maxInterval time.Duration
	retryDelay  time.Duration
	runTimeout  time.Duration

	mux      sync.Mutex
	failures int
}

// NewPipelineJob creates a new pipeline refresh job, sleeping a random
// period within [min, max] between successful runs
func NewPipelineJob(
	runner Runner,
	minInterval, maxInterval time.Duration,
	opts ...PipelineOption,
) *PipelineJob {
	if maxInterval < minInterval {
		maxInterval = minInterval
	}

	p := &PipelineJob{
		runner:      runner,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		minInterval: minInterval,
		maxInterval: maxInterval,
		retryDelay:  defaultRetryDelay,
		runTimeout:  maxInterval,
	}

	// Apply the options
	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *PipelineJob) Name() string {
	return pipelineJobName
}

// Run computes the table once, within the run timeout
func (p *PipelineJob) Run(ctx context.Context) error {
	if p.runTimeout > 0 {
		var cancelFn context.CancelFunc

		ctx, cancelFn = context.WithTimeout(ctx, p.runTimeout)
		defer cancelFn()
	}

	table, err := p.runner.Run(ctx)
	if err != nil {
		return err
	}

	if table == nil || len(table.Rows) == 0 {
		return errEmptyTable
	}

	p.logger.Debug(
		"pipeline refreshed",
		"rows", len(table.Rows),
		"median", table.Median,
	)

	return nil
}

// Next returns the jittered period after a success, and the backoff
// delay after a failure
func (p *PipelineJob) Next(err error) time.Duration {
	p.mux.Lock()
	defer p.mux.Unlock()

	if err == nil {
		p.failures = 0

		return p.jitter()
	}

	p.failures++

	return p.backoff()
}

// jitter returns a random period within [min, max]
func (p *PipelineJob) jitter() time.Duration {
	if p.maxInterval == p.minInterval {
		return p.minInterval
	}

	return p.minInterval + rand.N(p.maxInterval-p.minInterval+1) //nolint:gosec // Jitter only
}

// backoff returns the retry delay for the current failure streak
func (p *PipelineJob) backoff() time.Duration {
	delay := p.retryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	for i := 1; i < p.failures && delay < p.minInterval; i++ {
		delay *= 2
	}

	return min(delay, p.minInterval)
}
