package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"tracker/pkg/domain"
	"tracker/pkg/storage"
	"tracker/pkg/storage/postgres"

	"github.com/stretchr/testify/require"
)

func TestPgSQL_Begin_SuccessAndAlreadyInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	require.NotNil(t, txStorage)

	// session handles wrap a *sql.Tx
	inner, ok := txStorage.(*postgres.PgSQL)
	require.True(t, ok)
	_, isTx := inner.DB.(*sql.Tx)
	require.True(t, isTx)

	_, err = inner.Begin(ctx)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)

	require.NoError(t, inner.Rollback())
}

func TestPgSQL_CommitRollback_NotInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	require.ErrorIs(t, pg.Commit(), storage.ErrNotInTx)
	require.ErrorIs(t, pg.Rollback(), storage.ErrNotInTx)
}

func TestPgSQL_Run_CommitsOnNil(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	u, err := domain.NewUser("eater@example.com", "Eater")
	require.NoError(t, err)

	d, err := domain.NewDay(u.ID, domain.Date{Year: 2026, Month: 4, Day: 1})
	require.NoError(t, err)

	err = storage.Run(ctx, pg, func(ctx context.Context) error {
		if err := pg.StoreUsers(ctx, *u); err != nil {
			return err
		}

		return pg.StoreDays(ctx, *d)
	})
	require.NoError(t, err)

	got, err := pg.DayByID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, u.ID, got.UserID)
}

func TestPgSQL_Run_RollsBackOnError(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	boom := errors.New("boom")

	u, err := domain.NewUser("eater@example.com", "Eater")
	require.NoError(t, err)

	err = storage.Run(ctx, pg, func(ctx context.Context) error {
		if err := pg.StoreUsers(ctx, *u); err != nil {
			return err
		}

		// the session observes its own uncommitted write
		inside, err := pg.UserByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, inside)

		return boom
	})
	require.ErrorIs(t, err, boom, "the callback error must come back unchanged")

	got, err := pg.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got, "nothing persists after rollback")
}

func TestPgSQL_WithTx_CommitAndRollback(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	committed, err := domain.NewUser("kept@example.com", "Kept")
	require.NoError(t, err)

	err = pg.WithTx(ctx, func(ctx context.Context) error {
		return pg.StoreUsers(ctx, *committed)
	})
	require.NoError(t, err)

	got, err := pg.UserByID(ctx, committed.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	discarded, err := domain.NewUser("gone@example.com", "Gone")
	require.NoError(t, err)

	err = pg.WithTx(ctx, func(ctx context.Context) error {
		if err := pg.StoreUsers(ctx, *discarded); err != nil {
			return err
		}

		return errors.New("boom")
	})
	require.Error(t, err)

	got, err = pg.UserByID(ctx, discarded.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}
