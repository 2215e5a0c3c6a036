package refresh

import (
	"context"
	"time"
)

// Job is a single periodic refresh job.
// A job owns its schedule, the refresher only keeps time
type Job interface {
	// Name returns the human-readable name of the job
	Name() string

	// Run executes a single refresh
	Run(context.Context) error

	// Next returns the delay until the following run, given
	// the outcome of the last one (nil on success)
	Next(err error) time.Duration
}
