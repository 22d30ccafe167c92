package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage defines the minimal interface for enqueueing background jobs.
// Implementations persist the job into the underlying queue backend. The args
// parameter carries the job payload and opts customizes insertion (queue
// name, schedule, uniqueness). The enqueue is atomic with a surrounding
// session: a job enqueued inside Run only becomes visible when the session
// commits.
//
// The boolean result reports whether a job was actually inserted; false means
// an equivalent job already existed under the configured uniqueness rules.
type JobStorage interface {
	// AddJob enqueues a new job with the given arguments.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
