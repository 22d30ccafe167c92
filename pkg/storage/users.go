package storage

import (
	"context"
	"tracker/pkg/domain"
)

// UserStorage defines persistence operations for the User aggregate.
type UserStorage interface {
	// StoreUsers upserts the given users keyed by their id.
	StoreUsers(ctx context.Context, users ...domain.User) error
	// UserByID fetches a user by id. Returns nil when not found.
	UserByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	// UserByEmail fetches a user by email. Returns nil when not found.
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	// DeleteUser removes the user row. Returns a not-found error when the id
	// has no record.
	DeleteUser(ctx context.Context, id domain.UserID) error
}
