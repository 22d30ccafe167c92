package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"tracker/pkg/storage"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
)

// AddJob enqueues a new River job using the underlying database handle.
//
// Behavior:
//   - When the context carries a session (or AddJob is called on a session
//     handle directly), the job is inserted using InsertTx so that it
//     participates in the session and only becomes visible upon a successful
//     commit.
//   - Otherwise, the job is inserted using a client bound to the *sql.DB,
//     making the operation immediately visible once the insert succeeds.
//
// The returned bool reports whether the job was actually inserted; false
// means a uniqueness rule skipped it as a duplicate.
func (p *PgSQL) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	h := p
	if sess, ok := storage.SessionFrom(ctx); ok {
		pg, ok := sess.(*PgSQL)
		if !ok {
			return false, storage.ErrSessionMismatch
		}

		h = pg
	}

	tx, ok := h.DB.(*sql.Tx)
	if ok {
		riverClient, err := river.NewClient[*sql.Tx](riverdatabasesql.New(nil), &river.Config{})
		if err != nil {
			return false, fmt.Errorf("could not create river queue client: %w", err)
		}

		job, err := riverClient.InsertTx(ctx, tx, args, opts)
		if err != nil {
			return false, fmt.Errorf("could not insert job: %w", err)
		}

		return !job.UniqueSkippedAsDuplicate, nil
	}

	riverClient, err := river.NewClient(riverdatabasesql.New(h.DB.(*sql.DB)), &river.Config{})
	if err != nil {
		return false, fmt.Errorf("could not create river queue client: %w", err)
	}

	job, err := riverClient.Insert(ctx, args, opts)
	if err != nil {
		return false, fmt.Errorf("could not insert job: %w", err)
	}

	return !job.UniqueSkippedAsDuplicate, nil
}
