package memory

import (
	"context"
	"sort"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
)

func (m *Memory) StoreMeals(ctx context.Context, meals ...domain.Meal) error {
	if len(meals) == 0 {
		return nil
	}

	return m.withWrite(ctx, "StoreMeals", func(t *tables) error {
		for _, meal := range meals {
			id := uuid.UUID(meal.ID)
			t.meals[id] = cloneMeal(meal)
			t.touch(id)
		}

		return nil
	})
}

func (m *Memory) MealByID(ctx context.Context, id domain.MealID) (*domain.Meal, error) {
	var out *domain.Meal
	err := m.withRead(ctx, func(t *tables) error {
		if row, ok := t.meals[uuid.UUID(id)]; ok {
			row = cloneMeal(row)
			out = &row
		}

		return nil
	})

	return out, err
}

func (m *Memory) MealsByIDs(ctx context.Context, ids []domain.MealID) ([]domain.Meal, error) {
	var out []domain.Meal
	err := m.withRead(ctx, func(t *tables) error {
		for _, id := range ids {
			if row, ok := t.meals[uuid.UUID(id)]; ok {
				out = append(out, cloneMeal(row))
			}
		}

		return nil
	})

	return out, err
}

func (m *Memory) UserMeals(ctx context.Context, userID domain.UserID) ([]domain.Meal, error) {
	var out []domain.Meal
	err := m.withRead(ctx, func(t *tables) error {
		for _, row := range t.meals {
			if row.UserID == userID {
				out = append(out, cloneMeal(row))
			}
		}
		sortByInsertion(t, out, func(meal domain.Meal) uuid.UUID { return uuid.UUID(meal.ID) })

		return nil
	})

	return out, err
}

func (m *Memory) DeleteMeal(ctx context.Context, id domain.MealID) error {
	return m.withWrite(ctx, "DeleteMeal", func(t *tables) error {
		if _, ok := t.meals[uuid.UUID(id)]; !ok {
			return serrors.With(serrors.ErrNotFound, "meal %s not found", id)
		}
		delete(t.meals, uuid.UUID(id))

		return nil
	})
}

func (m *Memory) DeleteMeals(ctx context.Context, ids ...domain.MealID) error {
	if len(ids) == 0 {
		return nil
	}

	return m.withWrite(ctx, "DeleteMeals", func(t *tables) error {
		for _, id := range ids {
			delete(t.meals, uuid.UUID(id))
		}

		return nil
	})
}

func (m *Memory) DeleteUserMeals(ctx context.Context, userID domain.UserID) error {
	return m.withWrite(ctx, "DeleteUserMeals", func(t *tables) error {
		for id, row := range t.meals {
			if row.UserID == userID {
				delete(t.meals, id)
			}
		}

		return nil
	})
}

func (m *Memory) StoreFakeMeals(ctx context.Context, fakeMeals ...domain.FakeMeal) error {
	if len(fakeMeals) == 0 {
		return nil
	}

	return m.withWrite(ctx, "StoreFakeMeals", func(t *tables) error {
		for _, fm := range fakeMeals {
			id := uuid.UUID(fm.ID)
			t.fakeMeals[id] = fm
			t.touch(id)
		}

		return nil
	})
}

func (m *Memory) FakeMealByID(ctx context.Context, id domain.FakeMealID) (*domain.FakeMeal, error) {
	var out *domain.FakeMeal
	err := m.withRead(ctx, func(t *tables) error {
		if row, ok := t.fakeMeals[uuid.UUID(id)]; ok {
			out = &row
		}

		return nil
	})

	return out, err
}

func (m *Memory) FakeMealsByIDs(ctx context.Context, ids []domain.FakeMealID) ([]domain.FakeMeal, error) {
	var out []domain.FakeMeal
	err := m.withRead(ctx, func(t *tables) error {
		for _, id := range ids {
			if row, ok := t.fakeMeals[uuid.UUID(id)]; ok {
				out = append(out, row)
			}
		}

		return nil
	})

	return out, err
}

func (m *Memory) UserFakeMeals(ctx context.Context, userID domain.UserID) ([]domain.FakeMeal, error) {
	var out []domain.FakeMeal
	err := m.withRead(ctx, func(t *tables) error {
		for _, row := range t.fakeMeals {
			if row.UserID == userID {
				out = append(out, row)
			}
		}
		sortByInsertion(t, out, func(fm domain.FakeMeal) uuid.UUID { return uuid.UUID(fm.ID) })

		return nil
	})

	return out, err
}

func (m *Memory) DeleteFakeMeal(ctx context.Context, id domain.FakeMealID) error {
	return m.withWrite(ctx, "DeleteFakeMeal", func(t *tables) error {
		if _, ok := t.fakeMeals[uuid.UUID(id)]; !ok {
			return serrors.With(serrors.ErrNotFound, "fake meal %s not found", id)
		}
		delete(t.fakeMeals, uuid.UUID(id))

		return nil
	})
}

func (m *Memory) DeleteFakeMeals(ctx context.Context, ids ...domain.FakeMealID) error {
	if len(ids) == 0 {
		return nil
	}

	return m.withWrite(ctx, "DeleteFakeMeals", func(t *tables) error {
		for _, id := range ids {
			delete(t.fakeMeals, uuid.UUID(id))
		}

		return nil
	})
}

func (m *Memory) DeleteUserFakeMeals(ctx context.Context, userID domain.UserID) error {
	return m.withWrite(ctx, "DeleteUserFakeMeals", func(t *tables) error {
		for id, row := range t.fakeMeals {
			if row.UserID == userID {
				delete(t.fakeMeals, id)
			}
		}

		return nil
	})
}

// sortByInsertion orders rows by the table set's insertion sequence so
// listings are stable across runs.
func sortByInsertion[T any](t *tables, rows []T, id func(T) uuid.UUID) {
	sort.Slice(rows, func(i, j int) bool {
		return t.seq[id(rows[i])] < t.seq[id(rows[j])]
	})
}
