// Package storage defines the persistence ports of the tracker: one
// repository interface per aggregate, a session type for transactional work,
// and the ambient transaction context that lets one business operation span
// several repositories atomically without threading a handle through every
// call. Backends (PostgreSQL, in-memory) provide interchangeable
// implementations.
package storage

import "context"

// AllStorage is a composite interface that includes all per-aggregate
// repository capabilities required by the application.
type AllStorage interface {
	UserStorage
	DayStorage
	MealStorage
	FakeMealStorage
	RecipeStorage
	IngredientStorage
	ExternalRefStorage
	WorkoutStorage
	TemplateStorage
	JobStorage
}

// TxStorage is a session: a storage handle whose writes form one atomic unit
// of work. It exposes the same repository capabilities as AllStorage and
// additionally allows committing or rolling back. A session becomes unusable
// after Commit or Rollback; it belongs to exactly one Run invocation or one
// standalone repository call and is never shared across unrelated operations.
type TxStorage interface {
	AllStorage

	// Commit finalizes the session, persisting all writes made through it.
	Commit() error
	// Rollback aborts the session, discarding all uncommitted writes.
	Rollback() error
}

// Storage is the non-transactional entry handle with the ability to open
// sessions. Mutating repository calls made directly on it either join the
// ambient session found in the context or run in a private call-scoped
// transaction of their own, so repositories behave identically standalone and
// inside an orchestrated operation.
type Storage interface {
	AllStorage

	// Close releases any resources held by the implementation (e.g. the
	// underlying connection pool). After Close, the instance should not be used.
	Close() error

	// Begin opens a new session. Calling Begin on a handle that already is a
	// session returns ErrAlreadyInTx.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx runs cb inside one session published through the callback
	// context: every repository call made with that context joins the same
	// session. Commits when cb returns nil, rolls back otherwise. Equivalent
	// to Run(ctx, s, cb).
	WithTx(ctx context.Context, cb func(ctx context.Context) error) error
}
