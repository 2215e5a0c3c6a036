package refresh

import (
	"context"
	"time"

	"github.com/rs/xid"
)

// scheduledRun is a single scheduled job run
type scheduledRun struct {
	at    time.Time
	job   Job
	jobID xid.ID
}

// Less is utilized to sort scheduled runs by their due-time (earliest == first)
func (a scheduledRun) Less(b scheduledRun) bool {
	return a.at.Before(b.at)
}

// runResult is the outcome of a single job run
type runResult struct {
	err      error
	job      Job
	jobID    xid.ID
	duration time.Duration
}

// execute runs the scheduled job once, and reports back on resCh
func execute(ctx context.Context, run scheduledRun, resCh chan<- runResult) {
	start := time.Now()
	err := run.job.Run(ctx)

	select {
	case <-ctx.Done():
	case resCh <- runResult{
		err:      err,
		job:      run.job,
		jobID:    run.jobID,
		duration: time.Since(start),
	}:
	}
}
