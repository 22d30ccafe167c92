package storage

import "errors"

// Common errors returned by storage implementations.
var (
	// ErrAlreadyInTx is returned when a new session is requested from a handle
	// that already is a session.
	ErrAlreadyInTx = errors.New("already in tx")
	// ErrNotInTx is returned when Commit or Rollback is attempted on a handle
	// that is not a session.
	ErrNotInTx = errors.New("not in tx")
	// ErrSessionMismatch is returned when the ambient session in the context
	// belongs to a different storage backend than the one being called.
	ErrSessionMismatch = errors.New("ambient session belongs to a different storage backend")
)
