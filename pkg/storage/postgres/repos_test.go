package postgres_test

import (
	"context"
	"testing"
	"time"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestPgSQL_StoreUsers_Upsert(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	u := storedUser(t, pg, "eater@example.com")

	u.Name = "Renamed"
	require.NoError(t, pg.StoreUsers(ctx, u))

	got, err := pg.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Renamed", got.Name)

	byEmail, err := pg.UserByEmail(ctx, "EATER@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	require.Equal(t, u.ID, byEmail.ID)
}

func TestPgSQL_Days_RoundTripAndOrder(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	u := storedUser(t, pg, "eater@example.com")

	mk := func(day int) domain.Day {
		d, err := domain.NewDay(u.ID, domain.Date{Year: 2026, Month: 4, Day: day})
		require.NoError(t, err)

		return *d
	}

	d1, d2, d3 := mk(1), mk(20), mk(10)
	d1.AddMealID(domain.MealID{1})
	require.NoError(t, pg.StoreDays(ctx, d1, d2, d3))

	got, err := pg.DayByID(ctx, d1.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, d1.Date, got.Date)
	require.Equal(t, d1.MealIDs, got.MealIDs)

	days, err := pg.UserDays(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, days, 3)
	require.Equal(t, d2.ID, days[0].ID)
	require.Equal(t, d3.ID, days[1].ID)
	require.Equal(t, d1.ID, days[2].ID)

	subset, err := pg.DaysByIDs(ctx, []domain.DayID{d3.ID, domain.DayID{9}, d1.ID})
	require.NoError(t, err)
	require.Len(t, subset, 2, "missing ids are filtered, not an error")
	require.Equal(t, d3.ID, subset[0].ID)
	require.Equal(t, d1.ID, subset[1].ID)
}

func TestPgSQL_Meals_LinesSurviveRoundTrip(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	u := storedUser(t, pg, "eater@example.com")

	ing, err := domain.NewIngredient(u.ID, "Oats", 370, 13)
	require.NoError(t, err)
	require.NoError(t, pg.StoreIngredients(ctx, *ing))

	line, err := domain.NewIngredientLine(ing, 80)
	require.NoError(t, err)

	recipe, err := domain.NewRecipe(u.ID, "Porridge", []domain.IngredientLine{line})
	require.NoError(t, err)
	require.NoError(t, pg.StoreRecipes(ctx, *recipe))

	day, err := domain.NewDay(u.ID, domain.Date{Year: 2026, Month: 4, Day: 1})
	require.NoError(t, err)

	meal, err := domain.NewMealFromRecipe(recipe, day.ID)
	require.NoError(t, err)
	require.NoError(t, pg.StoreMeals(ctx, *meal))

	got, err := pg.MealByID(ctx, meal.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, meal.Lines, got.Lines)
	require.InDelta(t, meal.Calories(), got.Calories(), 1e-9)
	require.Equal(t, recipe.ID, got.RecipeID)
}

func TestPgSQL_DeleteSemantics(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	u := storedUser(t, pg, "eater@example.com")

	// strict delete errors on missing rows
	err := pg.DeleteRecipe(ctx, domain.RecipeID{1})
	require.ErrorIs(t, err, serrors.ErrNotFound)

	// lenient deletes ignore missing rows
	require.NoError(t, pg.DeleteRecipes(ctx, domain.RecipeID{1}))
	require.NoError(t, pg.DeleteUserRecipes(ctx, u.ID))

	recipe, err := domain.NewRecipe(u.ID, "Porridge", nil)
	require.NoError(t, err)
	require.NoError(t, pg.StoreRecipes(ctx, *recipe))
	require.NoError(t, pg.DeleteRecipe(ctx, recipe.ID))

	got, err := pg.RecipeByID(ctx, recipe.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestPgSQL_ExternalRefs_KeyLookup(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	u := storedUser(t, pg, "eater@example.com")

	ing, err := domain.NewIngredient(u.ID, "Banana", 89, 1.1)
	require.NoError(t, err)
	require.NoError(t, pg.StoreIngredients(ctx, *ing))

	ref, err := domain.NewExternalIngredientRef(u.ID, "openfoodfacts", "12345", ing.ID)
	require.NoError(t, err)
	require.NoError(t, pg.StoreExternalRefs(ctx, *ref))

	got, err := pg.ExternalRefByKey(ctx, u.ID, "openfoodfacts", "12345")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, ing.ID, got.IngredientID)

	missing, err := pg.ExternalRefByKey(ctx, u.ID, "openfoodfacts", "99999")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestPgSQL_Templates_SoftDeleteAndPurge(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	u := storedUser(t, pg, "lifter@example.com")

	tpl, err := domain.NewWorkoutTemplate(u.ID, "push day", []domain.TemplateLine{{
		ExerciseID:   domain.ExerciseID{1},
		ExerciseName: "Bench Press",
		TargetSets:   3,
		TargetReps:   8,
	}})
	require.NoError(t, err)
	require.NoError(t, pg.StoreTemplates(ctx, *tpl))

	// purge of a live row is a no-op
	require.NoError(t, pg.PurgeTemplate(ctx, tpl.ID))
	got, err := pg.TemplateByID(ctx, tpl.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	tpl.SoftDelete(time.Now().UTC())
	require.NoError(t, pg.StoreTemplates(ctx, *tpl))

	got, err = pg.TemplateByID(ctx, tpl.ID)
	require.NoError(t, err)
	require.Nil(t, got, "soft-deleted rows are hidden from normal reads")

	anyState, err := pg.TemplateByIDAnyState(ctx, tpl.ID)
	require.NoError(t, err)
	require.NotNil(t, anyState)
	require.True(t, anyState.Deleted)

	require.NoError(t, pg.PurgeTemplate(ctx, tpl.ID))
	anyState, err = pg.TemplateByIDAnyState(ctx, tpl.ID)
	require.NoError(t, err)
	require.Nil(t, anyState)
}

func TestPgSQL_Workouts_NewestFirst(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	u := storedUser(t, pg, "lifter@example.com")

	tpl, err := domain.NewWorkoutTemplate(u.ID, "legs", nil)
	require.NoError(t, err)

	mk := func(day int) domain.Workout {
		w, err := domain.NewWorkoutFromTemplate(tpl, domain.Date{Year: 2026, Month: 4, Day: day})
		require.NoError(t, err)

		return *w
	}

	w1, w2 := mk(5), mk(25)
	require.NoError(t, pg.StoreWorkouts(ctx, w1, w2))

	got, err := pg.UserWorkouts(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, w2.ID, got[0].ID)
	require.Equal(t, w1.ID, got[1].ID)
}
