package memory

import (
	"context"
	"slices"
	"tracker/pkg/storage"

	"github.com/riverqueue/river"
)

// interface conformance
var (
	_ storage.Storage   = (*Memory)(nil)
	_ storage.TxStorage = (*Memory)(nil)
)

// AddJob records the job in-process. It participates in a surrounding
// session like any other write: a job enqueued inside Run is only visible
// after the session commits. Uniqueness rules are not evaluated; every job is
// recorded and reported as inserted.
func (m *Memory) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	err := m.withWrite(ctx, "AddJob", func(t *tables) error {
		t.jobs = append(t.jobs, JobRecord{Args: args, Opts: opts})

		return nil
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// Jobs returns the jobs recorded so far, in enqueue order. Visible for tests
// and scripts driving the worker by hand.
func (m *Memory) Jobs(ctx context.Context) ([]JobRecord, error) {
	var out []JobRecord
	err := m.withRead(ctx, func(t *tables) error {
		out = slices.Clone(t.jobs)

		return nil
	})

	return out, err
}
