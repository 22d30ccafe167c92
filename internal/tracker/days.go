package tracker

import (
	"context"
	"fmt"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"
)

// AddMealsToDays generates one meal per (recipe, date) pair and attaches the
// meals to the matching days, materializing days that do not exist yet. All
// meals and day updates commit in one session.
func (t *tracker) AddMealsToDays(ctx context.Context,
	userID domain.UserID,
	dates []domain.Date,
	recipeIDs []domain.RecipeID) ([]domain.Day, error) {
	if len(dates) == 0 || len(recipeIDs) == 0 {
		return nil, serrors.With(serrors.ErrValidation, "at least one date and one recipe are required")
	}
	if len(dates) > t.options.MaxDaysPerCall {
		return nil, serrors.With(serrors.ErrValidation,
			"cannot target %d days in one call, the maximum is %d", len(dates), t.options.MaxDaysPerCall)
	}
	for _, date := range dates {
		if !date.Valid() {
			return nil, serrors.With(serrors.ErrValidation, "invalid date %s", date)
		}
	}

	// collapse repeated dates so each day is fetched and updated exactly once
	seen := make(map[domain.Date]bool, len(dates))
	unique := make([]domain.Date, 0, len(dates))
	for _, date := range dates {
		if seen[date] {
			continue
		}
		seen[date] = true
		unique = append(unique, date)
	}
	dates = unique

	// fail fast on the user and every recipe before touching any day
	if _, err := t.User(ctx, userID); err != nil {
		return nil, err
	}

	recipes, err := t.storage.RecipesByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("could not get recipes: %w", err)
	}

	byID := make(map[domain.RecipeID]domain.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}
	for _, id := range recipeIDs {
		r, ok := byID[id]
		if !ok {
			return nil, serrors.With(serrors.ErrNotFound, "recipe %s not found", id)
		}
		if r.UserID != userID {
			return nil, serrors.With(serrors.ErrPermission, "recipe %s does not belong to user %s", id, userID)
		}
	}

	var days []domain.Day
	err = t.storage.WithTx(ctx, func(ctx context.Context) error {
		meals := make([]domain.Meal, 0, len(dates)*len(recipeIDs))
		for _, date := range dates {
			day, err := t.fetchOrNewDay(ctx, userID, date)
			if err != nil {
				return err
			}

			for _, id := range recipeIDs {
				recipe := byID[id]

				meal, err := domain.NewMealFromRecipe(&recipe, day.ID)
				if err != nil {
					return err
				}

				day.AddMealID(meal.ID)
				meals = append(meals, *meal)
			}

			days = append(days, *day)
		}

		if err := t.storage.StoreMeals(ctx, meals...); err != nil {
			return fmt.Errorf("could not store meals: %w", err)
		}
		if err := t.storage.StoreDays(ctx, days...); err != nil {
			return fmt.Errorf("could not store days: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return days, nil
}

// AddFakeMealToDay logs a quick-add entry and attaches it to the date's day
// in one session.
func (t *tracker) AddFakeMealToDay(ctx context.Context,
	userID domain.UserID,
	date domain.Date,
	name string,
	calories, protein float64) (*domain.FakeMeal, error) {
	if _, err := t.User(ctx, userID); err != nil {
		return nil, err
	}

	var fakeMeal *domain.FakeMeal
	err := t.storage.WithTx(ctx, func(ctx context.Context) error {
		day, err := t.fetchOrNewDay(ctx, userID, date)
		if err != nil {
			return err
		}

		fakeMeal, err = domain.NewFakeMeal(userID, day.ID, name, calories, protein)
		if err != nil {
			return err
		}

		day.AddFakeMealID(fakeMeal.ID)

		if err := t.storage.StoreFakeMeals(ctx, *fakeMeal); err != nil {
			return fmt.Errorf("could not store fake meal: %w", err)
		}

		return t.storage.StoreDays(ctx, *day)
	})
	if err != nil {
		return nil, err
	}

	return fakeMeal, nil
}

// RemoveItemFromDay drops one entry from a day and deletes the referenced
// entity in the same session. A reference whose entity is already gone is
// still removable; the lenient delete tolerates the orphan.
func (t *tracker) RemoveItemFromDay(ctx context.Context,
	userID domain.UserID,
	dayID domain.DayID,
	ref domain.DayItemRef) error {
	if ref.Kind != domain.DayItemMeal && ref.Kind != domain.DayItemFakeMeal {
		return serrors.With(serrors.ErrValidation, "unknown day item kind %q", ref.Kind)
	}

	return t.storage.WithTx(ctx, func(ctx context.Context) error {
		day, err := t.storage.DayByID(ctx, dayID)
		if err != nil {
			return fmt.Errorf("could not get day: %w", err)
		}
		if day == nil {
			return serrors.With(serrors.ErrNotFound, "day %s not found", dayID)
		}
		if day.UserID != userID {
			return serrors.With(serrors.ErrPermission, "day %s does not belong to user %s", dayID, userID)
		}

		if !day.RemoveItem(ref) {
			return serrors.With(serrors.ErrNotFound, "day %s does not list %s %s", dayID, ref.Kind, ref.ID)
		}

		switch ref.Kind {
		case domain.DayItemMeal:
			err = t.storage.DeleteMeals(ctx, domain.MealID(ref.ID))
		case domain.DayItemFakeMeal:
			err = t.storage.DeleteFakeMeals(ctx, domain.FakeMealID(ref.ID))
		}
		if err != nil {
			return fmt.Errorf("could not delete %s: %w", ref.Kind, err)
		}

		return t.storage.StoreDays(ctx, *day)
	})
}

// Day fetches the day for a date with its listed entries resolved. Orphan
// references are dropped from the result.
func (t *tracker) Day(ctx context.Context, userID domain.UserID, date domain.Date) (*DayDetail, error) {
	if !date.Valid() {
		return nil, serrors.With(serrors.ErrValidation, "invalid date %s", date)
	}

	day, err := t.storage.DayByID(ctx, domain.DeriveDayID(userID, date))
	if err != nil {
		return nil, fmt.Errorf("could not get day: %w", err)
	}
	if day == nil {
		return nil, nil
	}

	meals, err := t.storage.MealsByIDs(ctx, day.MealIDs)
	if err != nil {
		return nil, fmt.Errorf("could not get day meals: %w", err)
	}

	fakeMeals, err := t.storage.FakeMealsByIDs(ctx, day.FakeMealIDs)
	if err != nil {
		return nil, fmt.Errorf("could not get day fake meals: %w", err)
	}

	return &DayDetail{
		Day:       *day,
		Meals:     meals,
		FakeMeals: fakeMeals,
	}, nil
}

// UserDays lists the user's days, newest date first.
func (t *tracker) UserDays(ctx context.Context, userID domain.UserID) ([]domain.Day, error) {
	days, err := t.storage.UserDays(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not get user days: %w", err)
	}

	return days, nil
}

// fetchOrNewDay loads the user's day for the date, constructing an empty one
// when it was never materialized. Saving is left to the caller.
func (t *tracker) fetchOrNewDay(ctx context.Context,
	userID domain.UserID,
	date domain.Date) (*domain.Day, error) {
	day, err := t.storage.DayByID(ctx, domain.DeriveDayID(userID, date))
	if err != nil {
		return nil, fmt.Errorf("could not get day: %w", err)
	}
	if day != nil {
		return day, nil
	}

	return domain.NewDay(userID, date)
}
