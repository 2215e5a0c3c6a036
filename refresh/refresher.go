package refresh

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sig-0/iq"
)

// idleWait is how long the loop sleeps with nothing scheduled.
// Register wakes it up early
const idleWait = time.Hour

var (
	errInvalidJob      = errors.New("invalid job")
	errInvalidInterval = errors.New("invalid interval")
)

// Refresher runs the registered jobs, each when its own schedule says so.
// A job is never run concurrently with itself
type Refresher struct {
	logger *slog.Logger

	registeredJobs sync.Map

	q      iq.Queue[scheduledRun]
	qMux   sync.Mutex
	wakeCh chan struct{}
}

// New creates a new Refresher instance
func New(opts ...Option) *Refresher {
	r := &Refresher{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		q:      iq.NewQueue[scheduledRun](),
		wakeCh: make(chan struct{}, 1),
	}

	// Apply the options
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register registers a new job with the refresher.
// The job is immediately queued up for execution
func (r *Refresher) Register(j Job) error {
	if j == nil || j.Name() == "" {
		return errInvalidJob
	}

	if j.Next(nil) <= 0 {
		return errInvalidInterval
	}

	// Register the job
	id := xid.New()
	r.registeredJobs.Store(id, j)

	r.logger.Info(
		"registered new refresh job",
		"name", j.Name(),
	)

	r.schedule(time.Now().UTC(), id, j)

	return nil
}

// Start starts the refresh service loop [BLOCKING]
func (r *Refresher) Start(ctx context.Context) error {
	var (
		resCh = make(chan runResult, 16)
		timer = time.NewTimer(0)
	)

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("refresh service shut down")

			return nil
		case <-timer.C:
		case <-r.wakeCh:
		case res := <-resCh:
			r.reschedule(res)
		}

		for _, run := range r.due() {
			r.logger.Info(
				"background refresh starting",
				"name", run.job.Name(),
			)

			go execute(ctx, run, resCh)
		}

		timer.Reset(r.untilNext())
	}
}

// reschedule queues the next run of a finished job, as the job decides
func (r *Refresher) reschedule(res runResult) {
	if _, ok := r.registeredJobs.Load(res.jobID); !ok {
		r.logger.Error(
			"unable to load registered job",
			"id", res.jobID.String(),
		)

		return
	}

	wait := res.job.Next(res.err)

	if res.err != nil {
		r.logger.Error(
			"background refresh failed",
			"name", res.job.Name(),
			"id", res.jobID.String(),
			"retry_in", wait.String(),
			"err", res.err.Error(),
		)
	} else {
		r.logger.Info(
			"background refresh done, sleeping",
			"name", res.job.Name(),
			"took", res.duration.String(),
			"period", wait.String(),
		)
	}

	r.schedule(time.Now().UTC().Add(wait), res.jobID, res.job)
}

// schedule queues a job run, and wakes the loop up
func (r *Refresher) schedule(at time.Time, jobID xid.ID, job Job) {
	r.qMux.Lock()

	r.q.Push(scheduledRun{
		at:    at,
		jobID: jobID,
		job:   job,
	})

	r.qMux.Unlock()

	select {
	case r.wakeCh <- struct{}{}:
	default:
	}
}

// due pops all runs that are due, as of the moment of calling
func (r *Refresher) due() []scheduledRun {
	r.qMux.Lock()
	defer r.qMux.Unlock()

	var (
		now  = time.Now().UTC()
		runs = make([]scheduledRun, 0)
	)

	for r.q.Len() > 0 && !r.q.Index(0).at.After(now) {
		runs = append(runs, *r.q.PopFront())
	}

	return runs
}

// untilNext returns the wait until the earliest scheduled run
func (r *Refresher) untilNext() time.Duration {
	r.qMux.Lock()
	defer r.qMux.Unlock()

	if r.q.Len() == 0 {
		return idleWait // all jobs are running, or none are registered
	}

	return max(time.Until(r.q.Index(0).at), 0)
}
