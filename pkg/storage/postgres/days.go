package postgres

import (
	"context"
	"fmt"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const daysTable = "days"

func (p *PgSQL) StoreDays(ctx context.Context, days ...domain.Day) error {
	if len(days) == 0 {
		return nil
	}

	rows, err := fromDomain[domain.Day, PgDay](days)
	if err != nil {
		return err
	}

	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Insert(daysTable).
			Rows(rows).
			OnConflict(goqu.DoUpdate("id", excluded("meal_ids", "fake_meal_ids"))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not store days into pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) DayByID(ctx context.Context, id domain.DayID) (*domain.Day, error) {
	var day *domain.Day
	err := p.withRead(ctx, func(h *PgSQL) error {
		var row PgDay
		found, err := h.Builder.From(daysTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ScanStructContext(ctx, &row)
		if err != nil {
			return fmt.Errorf("could not fetch day by id: %w", err)
		}
		if !found {
			return nil
		}

		day, err = row.ToDomain()

		return err
	})

	return day, err
}

func (p *PgSQL) DaysByIDs(ctx context.Context, ids []domain.DayID) ([]domain.Day, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, uuid.UUID(id))
	}

	var days []domain.Day
	err := p.withRead(ctx, func(h *PgSQL) error {
		var rows []PgDay
		if err := h.Builder.From(daysTable).
			Where(goqu.I("id").In(raw)).
			Executor().ScanStructsContext(ctx, &rows); err != nil {
			return fmt.Errorf("could not fetch days by ids: %w", err)
		}

		fetched, err := toDomain[domain.Day, PgDay](rows)
		if err != nil {
			return err
		}

		days = orderByIDs(fetched, raw, func(d domain.Day) uuid.UUID { return uuid.UUID(d.ID) })

		return nil
	})

	return days, err
}

func (p *PgSQL) UserDays(ctx context.Context, userID domain.UserID) ([]domain.Day, error) {
	var days []domain.Day
	err := p.withRead(ctx, func(h *PgSQL) error {
		var rows []PgDay
		if err := h.Builder.From(daysTable).
			Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
			Order(goqu.I("date").Desc()).
			Executor().ScanStructsContext(ctx, &rows); err != nil {
			return fmt.Errorf("could not fetch user days: %w", err)
		}

		var err error
		days, err = toDomain[domain.Day, PgDay](rows)

		return err
	})

	return days, err
}

func (p *PgSQL) DeleteDay(ctx context.Context, id domain.DayID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		res, err := h.Builder.Delete(daysTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("could not delete day from pg: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not read affected rows: %w", err)
		}
		if affected == 0 {
			return serrors.With(serrors.ErrNotFound, "day %s not found", id)
		}

		return nil
	})
}

func (p *PgSQL) DeleteDays(ctx context.Context, ids ...domain.DayID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, uuid.UUID(id))
	}

	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Delete(daysTable).
			Where(goqu.I("id").In(raw)).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not delete days from pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) DeleteUserDays(ctx context.Context, userID domain.UserID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Delete(daysTable).
			Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not delete user days from pg: %w", err)
		}

		return nil
	})
}
