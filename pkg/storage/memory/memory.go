// Package memory implements the storage ports on plain in-process maps. It
// honors the same session semantics as the PostgreSQL backend: a session
// stages its writes on a private copy of the tables and publishes them
// atomically on commit. That makes it the storage of choice for use-case
// tests and scripts.
//
// Commit merges the session's changes into the live tables row by row,
// diffing the staged copy against the snapshot the session was begun from.
// Overlapping sessions that touch disjoint rows both keep their writes; when
// two sessions write the same row, the later commit wins, which matches the
// upsert-by-natural-id conflict model.
package memory

import (
	"context"
	"sync"
	"tracker/pkg/metrics"
	"tracker/pkg/storage"
)

const backendLabel = "memory"

// Memory implements storage.Storage and storage.TxStorage. The zero
// distinction between the two roles follows the backend handle pattern: a
// base handle owns the live tables, a session handle owns a staged copy and a
// pointer back to its base.
type Memory struct {
	// mu guards data on the base handle. Session handles never take it except
	// at begin/commit time.
	mu *sync.Mutex
	// data is the live table set. Only meaningful on the base handle.
	data *tables

	// base is non-nil on session handles and points at the handle the session
	// was begun from.
	base *Memory
	// origin is the snapshot of the live tables taken at begin time. Commit
	// diffs staged against it to find the session's own changes.
	origin *tables
	// staged is the session's private copy of the tables.
	staged *tables
	// finished is set once the session committed or rolled back.
	finished bool

	// BeforeWrite, when set on the base handle, runs before every mutating
	// operation with the operation name. Returning an error fails the
	// operation; inside a session the enclosing Run then rolls the whole
	// session back. Test hook for forcing mid-cascade failures.
	BeforeWrite func(op string) error
}

// New creates an empty in-memory storage.
func New() *Memory {
	return &Memory{
		mu:   &sync.Mutex{},
		data: newTables(),
	}
}

// Close releases nothing; it exists to satisfy storage.Storage.
func (m *Memory) Close() error { return nil }

// Begin opens a session working on a deep copy of the live tables.
func (m *Memory) Begin(ctx context.Context) (storage.TxStorage, error) {
	if m.base != nil {
		return nil, storage.ErrAlreadyInTx
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	origin := m.data.clone()

	return &Memory{
		mu:     m.mu,
		base:   m,
		origin: origin,
		staged: origin.clone(),
	}, nil
}

// Commit merges the session's changes into the live table set.
func (m *Memory) Commit() error {
	if m.base == nil || m.finished {
		return storage.ErrNotInTx
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.base.data.apply(m.origin, m.staged)
	m.finished = true
	metrics.TxCommits.WithLabelValues(backendLabel).Inc()

	return nil
}

// Rollback discards the session's staged tables.
func (m *Memory) Rollback() error {
	if m.base == nil || m.finished {
		return storage.ErrNotInTx
	}

	m.staged = nil
	m.finished = true
	metrics.TxRollbacks.WithLabelValues(backendLabel).Inc()

	return nil
}

// WithTx runs cb inside one session published through the callback context.
func (m *Memory) WithTx(ctx context.Context, cb func(ctx context.Context) error) error {
	return storage.Run(ctx, m, cb)
}

// beforeWrite consults the base handle's test hook.
func (m *Memory) beforeWrite(op string) error {
	root := m
	if m.base != nil {
		root = m.base
	}
	if root.BeforeWrite != nil {
		return root.BeforeWrite(op)
	}

	return nil
}

// withWrite is the write helper every mutating method routes through. On a
// session handle the work runs on the staged tables. On a base handle it
// joins the ambient session when the context carries one, and otherwise runs
// in a private call-scoped session that commits or rolls back on its own.
func (m *Memory) withWrite(ctx context.Context, op string, work func(t *tables) error) error {
	if m.base != nil {
		if err := m.beforeWrite(op); err != nil {
			return err
		}

		return work(m.staged)
	}

	if s, ok := storage.SessionFrom(ctx); ok {
		sess, ok := s.(*Memory)
		if !ok {
			return storage.ErrSessionMismatch
		}
		metrics.WriteMode.WithLabelValues(backendLabel, metrics.ModeJoined).Inc()
		if err := sess.beforeWrite(op); err != nil {
			return err
		}

		return work(sess.staged)
	}

	metrics.WriteMode.WithLabelValues(backendLabel, metrics.ModeStandalone).Inc()

	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	sess := tx.(*Memory)
	if err := sess.beforeWrite(op); err != nil {
		_ = sess.Rollback()

		return err
	}
	if err := work(sess.staged); err != nil {
		_ = sess.Rollback()

		return err
	}

	return sess.Commit()
}

// withRead routes a read to the session's staged tables when one is visible
// (read-your-writes inside Run) and to the live tables otherwise. Reads never
// open a private session.
func (m *Memory) withRead(ctx context.Context, work func(t *tables) error) error {
	if m.base != nil {
		return work(m.staged)
	}

	if s, ok := storage.SessionFrom(ctx); ok {
		sess, ok := s.(*Memory)
		if !ok {
			return storage.ErrSessionMismatch
		}

		return work(sess.staged)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return work(m.data)
}
