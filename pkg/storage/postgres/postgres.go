// Package postgres implements the storage ports on PostgreSQL using
// database/sql and goqu. A base handle wraps a pgx connection pool; a session
// handle wraps a *sql.Tx. Repository methods route through withWrite and
// withRead, which join the ambient session published on the context when one
// is present and fall back to the pool otherwise.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"tracker/pkg/metrics"
	"tracker/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

const backendLabel = "postgres"

// Options defines the configuration parameters for PostgreSQL database connection.
type Options struct {
	// Username is the PostgreSQL user to connect as
	Username string
	// Password is the password for the specified user
	Password string
	// Host is the PostgreSQL server hostname or IP address
	Host string
	// SslMode specifies the SSL mode for the connection (e.g., "disable", "require")
	SslMode string
	// Port is the PostgreSQL server port number
	Port int
	// Database is the name of the database to connect to
	Database string
	// ConnMaxLifetime is the maximum amount of time a connection may be reused
	ConnMaxLifetime time.Duration
	// ConnMaxIdleTime is the maximum amount of time a connection may be idle
	ConnMaxIdleTime time.Duration
	// MaxOpenConnections is the maximum number of open connections to the database
	MaxOpenConnections int
	// MaxIdleConnections is the maximum number of connections in the idle connection pool
	MaxIdleConnections int
}

// DB defines the subset of database/sql methods used by this package. Both
// *sql.DB and *sql.Tx satisfy this interface, allowing the same code paths to
// be used within and outside sessions.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Builder abstracts the minimal subset of goqu methods used by this package to
// construct queries. Both a goqu database handle and a transaction handle
// implement this interface.
type Builder interface {
	From(table ...interface{}) *goqu.SelectDataset
	Insert(table interface{}) *goqu.InsertDataset
	Update(table interface{}) *goqu.UpdateDataset
	Delete(table interface{}) *goqu.DeleteDataset
}

// PgSQL implements the storage.Storage and storage.TxStorage interfaces for
// PostgreSQL.
type PgSQL struct {
	// DB is the underlying executor. It is either a *sql.DB (base handle) or
	// a *sql.Tx (session handle).
	DB DB
	// Builder is the goqu handle used to construct SQL queries bound to DB.
	Builder Builder
	// Pool is the underlying pgx connection Pool. Only set on the base handle.
	Pool *pgxpool.Pool
}

// interface conformance
var (
	_ storage.Storage   = (*PgSQL)(nil)
	_ storage.TxStorage = (*PgSQL)(nil)
)

// Close closes the underlying pgx connection pool.
func (p *PgSQL) Close() error {
	if p.Pool != nil {
		p.Pool.Close()
	}
	if db, ok := p.DB.(*sql.DB); ok {
		_ = db.Close()
	}

	return nil
}

// Commit commits the current session. It returns storage.ErrNotInTx if called
// on a base handle.
func (p *PgSQL) Commit() error {
	db, ok := p.DB.(*sql.Tx)
	if !ok {
		return storage.ErrNotInTx
	}

	if err := db.Commit(); err != nil {
		return fmt.Errorf("could not commit tx: %w", err)
	}

	metrics.TxCommits.WithLabelValues(backendLabel).Inc()

	return nil
}

// Rollback aborts the current session. It returns storage.ErrNotInTx if
// called on a base handle.
func (p *PgSQL) Rollback() error {
	db, ok := p.DB.(*sql.Tx)
	if !ok {
		return storage.ErrNotInTx
	}

	if err := db.Rollback(); err != nil {
		return fmt.Errorf("could not rollback tx: %w", err)
	}

	metrics.TxRollbacks.WithLabelValues(backendLabel).Inc()

	return nil
}

// Begin starts a new database transaction and returns a session handle bound
// to it. If called on a session handle, ErrAlreadyInTx is returned.
func (p *PgSQL) Begin(ctx context.Context) (storage.TxStorage, error) {
	db, ok := p.DB.(*sql.DB)
	if !ok {
		return nil, storage.ErrAlreadyInTx
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin tx: %w", err)
	}

	return &PgSQL{
		DB:      tx,
		Builder: goqu.NewTx("postgres", tx),
	}, nil
}

// WithTx runs cb inside one session. The session handle is published on the
// context passed to cb, so every storage call made under that context joins
// the session; a nil return commits, any error rolls back and is returned
// unchanged.
func (p *PgSQL) WithTx(ctx context.Context, cb func(ctx context.Context) error) error {
	return storage.Run(ctx, p, cb)
}

// withWrite routes a mutating operation. When the context carries a session,
// the write executes on that session's transaction and commits with it. On a
// bare context the write runs against the pool and is effective immediately.
func (p *PgSQL) withWrite(ctx context.Context, work func(h *PgSQL) error) error {
	if sess, ok := storage.SessionFrom(ctx); ok {
		h, ok := sess.(*PgSQL)
		if !ok {
			return storage.ErrSessionMismatch
		}

		metrics.WriteMode.WithLabelValues(backendLabel, metrics.ModeJoined).Inc()

		return work(h)
	}

	mode := metrics.ModeStandalone
	if _, ok := p.DB.(*sql.Tx); ok {
		// a session handle used directly, outside Run
		mode = metrics.ModeJoined
	}
	metrics.WriteMode.WithLabelValues(backendLabel, mode).Inc()

	return work(p)
}

// withRead routes a read to the ambient session when one is present, so a
// unit of work observes its own uncommitted writes.
func (p *PgSQL) withRead(ctx context.Context, work func(h *PgSQL) error) error {
	if sess, ok := storage.SessionFrom(ctx); ok {
		h, ok := sess.(*PgSQL)
		if !ok {
			return storage.ErrSessionMismatch
		}

		return work(h)
	}

	return work(p)
}

// New creates a new PostgreSQL storage instance backed by pgxpool, and a
// database/sql wrapper for compatibility with goqu and migrations.
func New(ctx context.Context, options Options) (*PgSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s dbname=%s password=%s sslmode=%s",
		options.Host,
		options.Port,
		options.Username,
		options.Database,
		options.Password,
		options.SslMode)
	cfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("could not parse pgxpool config: %w", err)
	}
	if options.MaxOpenConnections > 0 {
		cfg.MaxConns = int32(options.MaxOpenConnections) //nolint: gosec
	}
	if options.MaxIdleConnections > 0 {
		cfg.MinConns = int32(options.MaxIdleConnections) //nolint: gosec
	}
	if options.ConnMaxLifetime > 0 {
		cfg.MaxConnLifetime = options.ConnMaxLifetime
	}
	if options.ConnMaxIdleTime > 0 {
		cfg.MaxConnIdleTime = options.ConnMaxIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create pgx Pool: %w", err)
	}

	// wrap the pool with a *sql.DB to keep compatibility with goqu and goose
	sqlDB := stdlib.OpenDBFromPool(pool)

	return &PgSQL{
		DB:      sqlDB,
		Builder: goqu.Dialect("postgres").DB(sqlDB),
		Pool:    pool,
	}, nil
}
