package domain

import (
	"strings"
	"time"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
)

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// String returns the canonical textual form of the id.
func (id UserID) String() string { return uuid.UUID(id).String() }

// User is the account aggregate. Every other aggregate is owned by exactly
// one user and is removed when the user is deleted.
type User struct {
	// ID is the unique identifier of the user.
	ID UserID `json:"id"`

	// Email is the login identity; unique across all users.
	Email string `json:"email"`
	// Name is the display name.
	Name string `json:"name"`

	// CreatedAt is the time the account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser constructs a User, validating that email and name are non-empty.
// Email is lowercased so uniqueness is case-insensitive.
func NewUser(email, name string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") {
		return nil, serrors.With(serrors.ErrValidation, "invalid email %q", email)
	}
	if name == "" {
		return nil, serrors.With(serrors.ErrValidation, "name must not be empty")
	}

	return &User{
		ID:        UserID(uuid.New()),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}
