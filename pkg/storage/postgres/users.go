package postgres

import (
	"context"
	"fmt"
	"strings"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const usersTable = "users"

func (p *PgSQL) StoreUsers(ctx context.Context, users ...domain.User) error {
	if len(users) == 0 {
		return nil
	}

	rows, err := fromDomain[domain.User, PgUser](users)
	if err != nil {
		return err
	}

	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Insert(usersTable).
			Rows(rows).
			OnConflict(goqu.DoUpdate("id", excluded("email", "name"))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not store users into pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) UserByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var user *domain.User
	err := p.withRead(ctx, func(h *PgSQL) error {
		var row PgUser
		found, err := h.Builder.From(usersTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ScanStructContext(ctx, &row)
		if err != nil {
			return fmt.Errorf("could not fetch user by id: %w", err)
		}
		if !found {
			return nil
		}

		user, err = row.ToDomain()

		return err
	})

	return user, err
}

func (p *PgSQL) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user *domain.User
	err := p.withRead(ctx, func(h *PgSQL) error {
		var row PgUser
		found, err := h.Builder.From(usersTable).
			Where(goqu.I("email").Eq(strings.ToLower(email))).
			Executor().ScanStructContext(ctx, &row)
		if err != nil {
			return fmt.Errorf("could not fetch user by email: %w", err)
		}
		if !found {
			return nil
		}

		user, err = row.ToDomain()

		return err
	})

	return user, err
}

func (p *PgSQL) DeleteUser(ctx context.Context, id domain.UserID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		res, err := h.Builder.Delete(usersTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("could not delete user from pg: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not read affected rows: %w", err)
		}
		if affected == 0 {
			return serrors.With(serrors.ErrNotFound, "user %s not found", id)
		}

		return nil
	})
}
