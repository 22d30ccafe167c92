package postgres

import (
	"context"
	"fmt"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	mealsTable     = "meals"
	fakeMealsTable = "fake_meals"
)

func (p *PgSQL) StoreMeals(ctx context.Context, meals ...domain.Meal) error {
	if len(meals) == 0 {
		return nil
	}

	rows, err := fromDomain[domain.Meal, PgMeal](meals)
	if err != nil {
		return err
	}

	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Insert(mealsTable).
			Rows(rows).
			OnConflict(goqu.DoUpdate("id", excluded("day_id", "name", "lines"))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not store meals into pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) MealByID(ctx context.Context, id domain.MealID) (*domain.Meal, error) {
	var meal *domain.Meal
	err := p.withRead(ctx, func(h *PgSQL) error {
		var row PgMeal
		found, err := h.Builder.From(mealsTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ScanStructContext(ctx, &row)
		if err != nil {
			return fmt.Errorf("could not fetch meal by id: %w", err)
		}
		if !found {
			return nil
		}

		meal, err = row.ToDomain()

		return err
	})

	return meal, err
}

func (p *PgSQL) MealsByIDs(ctx context.Context, ids []domain.MealID) ([]domain.Meal, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, uuid.UUID(id))
	}

	var meals []domain.Meal
	err := p.withRead(ctx, func(h *PgSQL) error {
		var rows []PgMeal
		if err := h.Builder.From(mealsTable).
			Where(goqu.I("id").In(raw)).
			Executor().ScanStructsContext(ctx, &rows); err != nil {
			return fmt.Errorf("could not fetch meals by ids: %w", err)
		}

		fetched, err := toDomain[domain.Meal, PgMeal](rows)
		if err != nil {
			return err
		}

		meals = orderByIDs(fetched, raw, func(m domain.Meal) uuid.UUID { return uuid.UUID(m.ID) })

		return nil
	})

	return meals, err
}

func (p *PgSQL) UserMeals(ctx context.Context, userID domain.UserID) ([]domain.Meal, error) {
	var meals []domain.Meal
	err := p.withRead(ctx, func(h *PgSQL) error {
		var rows []PgMeal
		if err := h.Builder.From(mealsTable).
			Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
			Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
			Executor().ScanStructsContext(ctx, &rows); err != nil {
			return fmt.Errorf("could not fetch user meals: %w", err)
		}

		var err error
		meals, err = toDomain[domain.Meal, PgMeal](rows)

		return err
	})

	return meals, err
}

func (p *PgSQL) DeleteMeal(ctx context.Context, id domain.MealID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		res, err := h.Builder.Delete(mealsTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("could not delete meal from pg: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not read affected rows: %w", err)
		}
		if affected == 0 {
			return serrors.With(serrors.ErrNotFound, "meal %s not found", id)
		}

		return nil
	})
}

func (p *PgSQL) DeleteMeals(ctx context.Context, ids ...domain.MealID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, uuid.UUID(id))
	}

	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Delete(mealsTable).
			Where(goqu.I("id").In(raw)).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not delete meals from pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) DeleteUserMeals(ctx context.Context, userID domain.UserID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Delete(mealsTable).
			Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not delete user meals from pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) StoreFakeMeals(ctx context.Context, fakeMeals ...domain.FakeMeal) error {
	if len(fakeMeals) == 0 {
		return nil
	}

	rows, err := fromDomain[domain.FakeMeal, PgFakeMeal](fakeMeals)
	if err != nil {
		return err
	}

	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Insert(fakeMealsTable).
			Rows(rows).
			OnConflict(goqu.DoUpdate("id", excluded("day_id", "name", "calories", "protein"))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not store fake meals into pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) FakeMealByID(ctx context.Context, id domain.FakeMealID) (*domain.FakeMeal, error) {
	var fakeMeal *domain.FakeMeal
	err := p.withRead(ctx, func(h *PgSQL) error {
		var row PgFakeMeal
		found, err := h.Builder.From(fakeMealsTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ScanStructContext(ctx, &row)
		if err != nil {
			return fmt.Errorf("could not fetch fake meal by id: %w", err)
		}
		if !found {
			return nil
		}

		fakeMeal, err = row.ToDomain()

		return err
	})

	return fakeMeal, err
}

func (p *PgSQL) FakeMealsByIDs(ctx context.Context, ids []domain.FakeMealID) ([]domain.FakeMeal, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, uuid.UUID(id))
	}

	var fakeMeals []domain.FakeMeal
	err := p.withRead(ctx, func(h *PgSQL) error {
		var rows []PgFakeMeal
		if err := h.Builder.From(fakeMealsTable).
			Where(goqu.I("id").In(raw)).
			Executor().ScanStructsContext(ctx, &rows); err != nil {
			return fmt.Errorf("could not fetch fake meals by ids: %w", err)
		}

		fetched, err := toDomain[domain.FakeMeal, PgFakeMeal](rows)
		if err != nil {
			return err
		}

		fakeMeals = orderByIDs(fetched, raw, func(f domain.FakeMeal) uuid.UUID { return uuid.UUID(f.ID) })

		return nil
	})

	return fakeMeals, err
}

func (p *PgSQL) UserFakeMeals(ctx context.Context, userID domain.UserID) ([]domain.FakeMeal, error) {
	var fakeMeals []domain.FakeMeal
	err := p.withRead(ctx, func(h *PgSQL) error {
		var rows []PgFakeMeal
		if err := h.Builder.From(fakeMealsTable).
			Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
			Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
			Executor().ScanStructsContext(ctx, &rows); err != nil {
			return fmt.Errorf("could not fetch user fake meals: %w", err)
		}

		var err error
		fakeMeals, err = toDomain[domain.FakeMeal, PgFakeMeal](rows)

		return err
	})

	return fakeMeals, err
}

func (p *PgSQL) DeleteFakeMeal(ctx context.Context, id domain.FakeMealID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		res, err := h.Builder.Delete(fakeMealsTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("could not delete fake meal from pg: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not read affected rows: %w", err)
		}
		if affected == 0 {
			return serrors.With(serrors.ErrNotFound, "fake meal %s not found", id)
		}

		return nil
	})
}

func (p *PgSQL) DeleteFakeMeals(ctx context.Context, ids ...domain.FakeMealID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, uuid.UUID(id))
	}

	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Delete(fakeMealsTable).
			Where(goqu.I("id").In(raw)).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not delete fake meals from pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) DeleteUserFakeMeals(ctx context.Context, userID domain.UserID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Delete(fakeMealsTable).
			Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not delete user fake meals from pg: %w", err)
		}

		return nil
	})
}
