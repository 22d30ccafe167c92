package tracker_test

import (
	"context"
	"errors"
	"testing"
	"tracker/internal/tracker"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAddMealsToDays_Shape(t *testing.T) {
	trk, mem := newTestTracker(t)
	ctx := context.Background()

	u := createUser(t, trk, "eater@example.com")
	oats := createIngredient(t, trk, u.ID, "Oats", 100, 15)
	porridge := createRecipe(t, trk, u.ID, "Porridge",
		tracker.RecipeItem{IngredientID: oats.ID, Grams: 200})
	shake := createRecipe(t, trk, u.ID, "Shake",
		tracker.RecipeItem{IngredientID: oats.ID, Grams: 50})

	dates := []domain.Date{
		{Year: 2026, Month: 4, Day: 1},
		{Year: 2026, Month: 4, Day: 2},
	}

	days, err := trk.AddMealsToDays(ctx, u.ID, dates, []domain.RecipeID{porridge.ID, shake.ID})
	require.NoError(t, err)
	require.Len(t, days, 2)

	// 2 days x 2 recipes make 4 meals, 2 referenced per day
	meals, err := mem.UserMeals(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, meals, 4)

	for i, day := range days {
		require.Equal(t, dates[i], day.Date)
		require.Equal(t, domain.DeriveDayID(u.ID, dates[i]), day.ID)
		require.Len(t, day.MealIDs, 2)
	}

	// every meal carries copied lines under fresh line ids
	recipeLineIDs := map[domain.LineID]bool{
		porridge.Lines[0].ID: true,
		shake.Lines[0].ID:    true,
	}
	for _, meal := range meals {
		require.Len(t, meal.Lines, 1)
		require.False(t, recipeLineIDs[meal.Lines[0].ID], "meal lines must not share recipe line ids")
		require.Equal(t, oats.ID, meal.Lines[0].IngredientID)
	}
}

func TestAddMealsToDays_AppendsToExistingDay(t *testing.T) {
	trk, _ := newTestTracker(t)
	ctx := context.Background()

	u := createUser(t, trk, "eater@example.com")
	oats := createIngredient(t, trk, u.ID, "Oats", 100, 15)
	recipe := createRecipe(t, trk, u.ID, "Porridge",
		tracker.RecipeItem{IngredientID: oats.ID, Grams: 200})

	date := domain.Date{Year: 2026, Month: 4, Day: 1}

	first, err := trk.AddMealsToDays(ctx, u.ID, []domain.Date{date}, []domain.RecipeID{recipe.ID})
	require.NoError(t, err)
	require.Len(t, first[0].MealIDs, 1)

	second, err := trk.AddMealsToDays(ctx, u.ID, []domain.Date{date}, []domain.RecipeID{recipe.ID})
	require.NoError(t, err)
	require.Len(t, second[0].MealIDs, 2, "the same day accumulates meals")
	require.Equal(t, first[0].ID, second[0].ID)
}

func TestAddMealsToDays_DuplicateDatesCollapse(t *testing.T) {
	trk, mem := newTestTracker(t)
	ctx := context.Background()

	u := createUser(t, trk, "eater@example.com")
	oats := createIngredient(t, trk, u.ID, "Oats", 100, 15)
	recipe := createRecipe(t, trk, u.ID, "Porridge",
		tracker.RecipeItem{IngredientID: oats.ID, Grams: 200})

	date := domain.Date{Year: 2026, Month: 4, Day: 1}

	// the same date twice targets one day once
	days, err := trk.AddMealsToDays(ctx, u.ID, []domain.Date{date, date}, []domain.RecipeID{recipe.ID})
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Len(t, days[0].MealIDs, 1)

	// every stored meal stays referenced from the day
	meals, err := mem.UserMeals(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	require.Equal(t, days[0].MealIDs[0], meals[0].ID)
}

func TestAddMealsToDays_Validation(t *testing.T) {
	trk, mem := newTestTracker(t)
	ctx := context.Background()

	u := createUser(t, trk, "eater@example.com")
	oats := createIngredient(t, trk, u.ID, "Oats", 100, 15)
	recipe := createRecipe(t, trk, u.ID, "Porridge",
		tracker.RecipeItem{IngredientID: oats.ID, Grams: 200})

	_, err := trk.AddMealsToDays(ctx, u.ID, nil, []domain.RecipeID{recipe.ID})
	require.ErrorIs(t, err, serrors.ErrValidation)

	// cap on targeted days
	tooMany := make([]domain.Date, 32)
	for i := range tooMany {
		tooMany[i] = domain.Date{Year: 2026, Month: 3, Day: i%28 + 1}
	}
	_, err = trk.AddMealsToDays(ctx, u.ID, tooMany, []domain.RecipeID{recipe.ID})
	require.ErrorIs(t, err, serrors.ErrValidation)

	_, err = trk.AddMealsToDays(ctx, u.ID,
		[]domain.Date{{Year: 2026, Month: 2, Day: 30}},
		[]domain.RecipeID{recipe.ID})
	require.ErrorIs(t, err, serrors.ErrValidation)

	// one unknown recipe fails the whole call before anything is written
	_, err = trk.AddMealsToDays(ctx, u.ID,
		[]domain.Date{{Year: 2026, Month: 4, Day: 1}},
		[]domain.RecipeID{recipe.ID, domain.RecipeID(newUUID())})
	require.ErrorIs(t, err, serrors.ErrNotFound)

	meals, err := mem.UserMeals(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, meals)

	days, err := mem.UserDays(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, days)
}

func TestAddMealsToDays_AtomicUnderFailure(t *testing.T) {
	trk, mem := newTestTracker(t)
	ctx := context.Background()

	u := createUser(t, trk, "eater@example.com")
	oats := createIngredient(t, trk, u.ID, "Oats", 100, 15)
	recipe := createRecipe(t, trk, u.ID, "Porridge",
		tracker.RecipeItem{IngredientID: oats.ID, Grams: 200})

	boom := errors.New("injected")
	mem.BeforeWrite = failOn("StoreDays", boom)

	_, err := trk.AddMealsToDays(ctx, u.ID,
		[]domain.Date{{Year: 2026, Month: 4, Day: 1}},
		[]domain.RecipeID{recipe.ID})
	require.ErrorIs(t, err, boom)

	mem.BeforeWrite = nil

	// the already staged meals rolled back with the failed day write
	meals, err := mem.UserMeals(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, meals)
}

func TestAddFakeMealToDay(t *testing.T) {
	trk, _ := newTestTracker(t)
	ctx := context.Background()

	u := createUser(t, trk, "eater@example.com")
	date := domain.Date{Year: 2026, Month: 4, Day: 1}

	fm, err := trk.AddFakeMealToDay(ctx, u.ID, date, "Cheat meal", 950, 25)
	require.NoError(t, err)
	require.Equal(t, domain.DeriveDayID(u.ID, date), fm.DayID)

	detail, err := trk.Day(ctx, u.ID, date)
	require.NoError(t, err)
	require.NotNil(t, detail)
	require.Len(t, detail.FakeMeals, 1)
	require.Equal(t, fm.ID, detail.FakeMeals[0].ID)
	require.InDelta(t, 950.0, detail.FakeMeals[0].Calories, 1e-9)
}

func TestRemoveItemFromDay(t *testing.T) {
	trk, mem := newTestTracker(t)
	ctx := context.Background()

	u := createUser(t, trk, "eater@example.com")
	oats := createIngredient(t, trk, u.ID, "Oats", 100, 15)
	recipe := createRecipe(t, trk, u.ID, "Porridge",
		tracker.RecipeItem{IngredientID: oats.ID, Grams: 200})
	date := domain.Date{Year: 2026, Month: 4, Day: 1}

	days, err := trk.AddMealsToDays(ctx, u.ID, []domain.Date{date}, []domain.RecipeID{recipe.ID})
	require.NoError(t, err)

	day := days[0]
	mealID := day.MealIDs[0]

	require.NoError(t, trk.RemoveItemFromDay(ctx, u.ID, day.ID, domain.DayItemRef{
		Kind: domain.DayItemMeal,
		ID:   uuid.UUID(mealID),
	}))

	// both the reference and the meal entity are gone
	detail, err := trk.Day(ctx, u.ID, date)
	require.NoError(t, err)
	require.Empty(t, detail.Day.MealIDs)

	gone, err := mem.MealByID(ctx, mealID)
	require.NoError(t, err)
	require.Nil(t, gone)

	// removing it again is a not-found
	err = trk.RemoveItemFromDay(ctx, u.ID, day.ID, domain.DayItemRef{
		Kind: domain.DayItemMeal,
		ID:   uuid.UUID(mealID),
	})
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestRemoveItemFromDay_ToleratesOrphanRef(t *testing.T) {
	trk, mem := newTestTracker(t)
	ctx := context.Background()

	u := createUser(t, trk, "eater@example.com")
	oats := createIngredient(t, trk, u.ID, "Oats", 100, 15)
	recipe := createRecipe(t, trk, u.ID, "Porridge",
		tracker.RecipeItem{IngredientID: oats.ID, Grams: 200})
	date := domain.Date{Year: 2026, Month: 4, Day: 1}

	days, err := trk.AddMealsToDays(ctx, u.ID, []domain.Date{date}, []domain.RecipeID{recipe.ID})
	require.NoError(t, err)

	day := days[0]
	mealID := day.MealIDs[0]

	// delete the entity behind the day's back; the reference goes stale
	require.NoError(t, mem.DeleteMeal(ctx, mealID))

	require.NoError(t, trk.RemoveItemFromDay(ctx, u.ID, day.ID, domain.DayItemRef{
		Kind: domain.DayItemMeal,
		ID:   uuid.UUID(mealID),
	}))

	detail, err := trk.Day(ctx, u.ID, date)
	require.NoError(t, err)
	require.Empty(t, detail.Day.MealIDs)
}

func TestRemoveItemFromDay_UnknownKind(t *testing.T) {
	trk, _ := newTestTracker(t)
	ctx := context.Background()

	u := createUser(t, trk, "eater@example.com")
	date := domain.Date{Year: 2026, Month: 4, Day: 1}

	fm, err := trk.AddFakeMealToDay(ctx, u.ID, date, "Snack", 200, 5)
	require.NoError(t, err)

	err = trk.RemoveItemFromDay(ctx, u.ID, fm.DayID, domain.DayItemRef{
		Kind: "exercise",
		ID:   uuid.UUID(fm.ID),
	})
	require.ErrorIs(t, err, serrors.ErrValidation)
}

func TestRemoveItemFromDay_Permission(t *testing.T) {
	trk, _ := newTestTracker(t)
	ctx := context.Background()

	u := createUser(t, trk, "eater@example.com")
	other := createUser(t, trk, "other@example.com")
	date := domain.Date{Year: 2026, Month: 4, Day: 1}

	fm, err := trk.AddFakeMealToDay(ctx, u.ID, date, "Snack", 200, 5)
	require.NoError(t, err)

	err = trk.RemoveItemFromDay(ctx, other.ID, fm.DayID, domain.DayItemRef{
		Kind: domain.DayItemFakeMeal,
		ID:   uuid.UUID(fm.ID),
	})
	require.ErrorIs(t, err, serrors.ErrPermission)
}

func TestDay_DropsOrphanRefsSilently(t *testing.T) {
	trk, mem := newTestTracker(t)
	ctx := context.Background()

	u := createUser(t, trk, "eater@example.com")
	oats := createIngredient(t, trk, u.ID, "Oats", 100, 15)
	recipe := createRecipe(t, trk, u.ID, "Porridge",
		tracker.RecipeItem{IngredientID: oats.ID, Grams: 200})
	date := domain.Date{Year: 2026, Month: 4, Day: 1}

	days, err := trk.AddMealsToDays(ctx, u.ID, []domain.Date{date}, []domain.RecipeID{recipe.ID})
	require.NoError(t, err)

	require.NoError(t, mem.DeleteMeal(ctx, days[0].MealIDs[0]))

	detail, err := trk.Day(ctx, u.ID, date)
	require.NoError(t, err)
	require.NotNil(t, detail)
	require.Len(t, detail.Day.MealIDs, 1, "the stale reference stays listed")
	require.Empty(t, detail.Meals, "but resolves to nothing")
}

func TestDay_NeverMaterialized(t *testing.T) {
	trk, _ := newTestTracker(t)

	u := createUser(t, trk, "eater@example.com")

	detail, err := trk.Day(context.Background(), u.ID, domain.Date{Year: 2026, Month: 4, Day: 1})
	require.NoError(t, err)
	require.Nil(t, detail)
}

func TestUserDays_NewestFirst(t *testing.T) {
	trk, _ := newTestTracker(t)
	ctx := context.Background()

	u := createUser(t, trk, "eater@example.com")

	for _, day := range []int{3, 1, 2} {
		_, err := trk.AddFakeMealToDay(ctx, u.ID,
			domain.Date{Year: 2026, Month: 4, Day: day}, "Snack", 100, 2)
		require.NoError(t, err)
	}

	days, err := trk.UserDays(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, days, 3)
	require.Equal(t, 3, days[0].Date.Day)
	require.Equal(t, 2, days[1].Date.Day)
	require.Equal(t, 1, days[2].Date.Day)
}
