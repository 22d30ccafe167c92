package storage

import (
	"context"
	"tracker/pkg/domain"
)

// DayStorage defines persistence operations for the Day aggregate.
//
// Single deletes are strict (not-found error on a missing id) while bulk and
// owner-wide deletes are lenient (missing ids are no-ops). Cascading use
// cases rely on the lenient variants to tolerate already-empty stores; the
// asymmetry is deliberate.
type DayStorage interface {
	// StoreDays upserts the given days keyed by their deterministic id.
	StoreDays(ctx context.Context, days ...domain.Day) error
	// DayByID fetches a day by id. Returns nil when not found.
	DayByID(ctx context.Context, id domain.DayID) (*domain.Day, error)
	// DaysByIDs fetches the days with the given ids, preserving request
	// order. Ids without a record are filtered out, never an error.
	DaysByIDs(ctx context.Context, ids []domain.DayID) ([]domain.Day, error)
	// UserDays returns all days of the given user, newest date first.
	UserDays(ctx context.Context, userID domain.UserID) ([]domain.Day, error)
	// DeleteDay removes one day. Returns a not-found error when absent.
	DeleteDay(ctx context.Context, id domain.DayID) error
	// DeleteDays removes the given days; missing ids are ignored.
	DeleteDays(ctx context.Context, ids ...domain.DayID) error
	// DeleteUserDays removes all days of the given user.
	DeleteUserDays(ctx context.Context, userID domain.UserID) error
}
