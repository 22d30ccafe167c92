package storage

import (
	"context"
	"fmt"
)

// sessionKey is the unexported context key under which the ambient session is
// published. Being context-based, the slot is scoped per logical call chain:
// two concurrent Run invocations derive two independent contexts and can
// never observe each other's session, while everything causally reachable
// from one Run (including fan-out goroutines handed the same context) sees
// that Run's session.
type sessionKey struct{}

// WithSession returns a context carrying tx as the ambient session.
func WithSession(ctx context.Context, tx TxStorage) context.Context {
	return context.WithValue(ctx, sessionKey{}, tx)
}

// SessionFrom returns the session visible at the caller's point in the call
// chain, or false when the caller runs outside any Run.
func SessionFrom(ctx context.Context) (TxStorage, bool) {
	tx, ok := ctx.Value(sessionKey{}).(TxStorage)

	return tx, ok
}

// Run executes work inside one session: it begins a session on s, publishes
// it through the context passed to work, commits when work returns nil and
// rolls back otherwise. The error returned by work propagates unchanged.
// Every repository call made with the derived context, directly or through
// any intermediate call, joins the same session, making the whole call graph
// atomic.
func Run(ctx context.Context, s Storage, work func(ctx context.Context) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin session: %w", err)
	}

	if err := work(WithSession(ctx, tx)); err != nil {
		_ = tx.Rollback()

		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()

		return fmt.Errorf("could not commit session: %w", err)
	}

	return nil
}
