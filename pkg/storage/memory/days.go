package memory

import (
	"context"
	"sort"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
)

func (m *Memory) StoreDays(ctx context.Context, days ...domain.Day) error {
	if len(days) == 0 {
		return nil
	}

	return m.withWrite(ctx, "StoreDays", func(t *tables) error {
		for _, d := range days {
			id := uuid.UUID(d.ID)
			t.days[id] = cloneDay(d)
			t.touch(id)
		}

		return nil
	})
}

func (m *Memory) DayByID(ctx context.Context, id domain.DayID) (*domain.Day, error) {
	var out *domain.Day
	err := m.withRead(ctx, func(t *tables) error {
		if row, ok := t.days[uuid.UUID(id)]; ok {
			row = cloneDay(row)
			out = &row
		}

		return nil
	})

	return out, err
}

func (m *Memory) DaysByIDs(ctx context.Context, ids []domain.DayID) ([]domain.Day, error) {
	var out []domain.Day
	err := m.withRead(ctx, func(t *tables) error {
		for _, id := range ids {
			if row, ok := t.days[uuid.UUID(id)]; ok {
				out = append(out, cloneDay(row))
			}
		}

		return nil
	})

	return out, err
}

func (m *Memory) UserDays(ctx context.Context, userID domain.UserID) ([]domain.Day, error) {
	var out []domain.Day
	err := m.withRead(ctx, func(t *tables) error {
		for _, row := range t.days {
			if row.UserID == userID {
				out = append(out, cloneDay(row))
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Compare(out[j].Date) > 0
	})

	return out, nil
}

func (m *Memory) DeleteDay(ctx context.Context, id domain.DayID) error {
	return m.withWrite(ctx, "DeleteDay", func(t *tables) error {
		if _, ok := t.days[uuid.UUID(id)]; !ok {
			return serrors.With(serrors.ErrNotFound, "day %s not found", id)
		}
		delete(t.days, uuid.UUID(id))

		return nil
	})
}

func (m *Memory) DeleteDays(ctx context.Context, ids ...domain.DayID) error {
	if len(ids) == 0 {
		return nil
	}

	return m.withWrite(ctx, "DeleteDays", func(t *tables) error {
		for _, id := range ids {
			delete(t.days, uuid.UUID(id))
		}

		return nil
	})
}

func (m *Memory) DeleteUserDays(ctx context.Context, userID domain.UserID) error {
	return m.withWrite(ctx, "DeleteUserDays", func(t *tables) error {
		for id, row := range t.days {
			if row.UserID == userID {
				delete(t.days, id)
			}
		}

		return nil
	})
}
