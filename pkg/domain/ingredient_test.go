package domain_test

import (
	"testing"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func testIngredient(t *testing.T, name string, caloriesPer100, proteinPer100 float64) *domain.Ingredient {
	t.Helper()

	user, err := domain.NewUser("eater@example.com", "Eater")
	require.NoError(t, err)

	ing, err := domain.NewIngredient(user.ID, name, caloriesPer100, proteinPer100)
	require.NoError(t, err)

	return ing
}

func TestNewIngredientLine_ScalesLinearly(t *testing.T) {
	ing := testIngredient(t, "chicken breast", 100, 15)

	line, err := domain.NewIngredientLine(ing, 200)
	require.NoError(t, err)

	require.Equal(t, ing.ID, line.IngredientID)
	require.Equal(t, ing.Name, line.Name)
	require.InDelta(t, 200.0, line.Calories, 1e-9)
	require.InDelta(t, 30.0, line.Protein, 1e-9)
}

func TestNewIngredientLine_RejectsBadQuantity(t *testing.T) {
	ing := testIngredient(t, "rice", 130, 2.7)

	for _, grams := range []float64{0, -50} {
		_, err := domain.NewIngredientLine(ing, grams)
		require.ErrorIs(t, err, serrors.ErrValidation, "quantity %v should be rejected", grams)
	}
}

func TestIngredientLine_CopyGetsFreshID(t *testing.T) {
	ing := testIngredient(t, "oats", 370, 13)

	line, err := domain.NewIngredientLine(ing, 50)
	require.NoError(t, err)

	cp := line.Copy()
	require.NotEqual(t, line.ID, cp.ID, "copied line must get a fresh id")
	require.Equal(t, line.IngredientID, cp.IngredientID)
	require.Equal(t, line.Calories, cp.Calories)
	require.Equal(t, line.Protein, cp.Protein)
}

func TestNewIngredient_Validation(t *testing.T) {
	user, err := domain.NewUser("eater@example.com", "Eater")
	require.NoError(t, err)

	_, err = domain.NewIngredient(user.ID, "  ", 100, 10)
	require.ErrorIs(t, err, serrors.ErrValidation)

	_, err = domain.NewIngredient(user.ID, "salt", -1, 0)
	require.ErrorIs(t, err, serrors.ErrValidation)
}

func TestRecipeTotals_RecomputedFromLines(t *testing.T) {
	ing1 := testIngredient(t, "chicken breast", 100, 15)
	ing2 := testIngredient(t, "rice", 130, 2.7)

	l1, err := domain.NewIngredientLine(ing1, 200)
	require.NoError(t, err)
	l2, err := domain.NewIngredientLine(ing2, 100)
	require.NoError(t, err)

	recipe, err := domain.NewRecipe(ing1.UserID, "chicken bowl", []domain.IngredientLine{l1, l2})
	require.NoError(t, err)

	require.InDelta(t, 330.0, recipe.Calories(), 1e-9)
	require.InDelta(t, 32.7, recipe.Protein(), 1e-9)

	// dropping a line changes the totals with no cache to invalidate
	recipe.ReplaceLines([]domain.IngredientLine{l1})
	require.InDelta(t, 200.0, recipe.Calories(), 1e-9)
	require.InDelta(t, 30.0, recipe.Protein(), 1e-9)
}

func TestNewMealFromRecipe_CopiesLines(t *testing.T) {
	ing := testIngredient(t, "chicken breast", 100, 15)
	line, err := domain.NewIngredientLine(ing, 200)
	require.NoError(t, err)

	recipe, err := domain.NewRecipe(ing.UserID, "grilled chicken", []domain.IngredientLine{line})
	require.NoError(t, err)

	day, err := domain.NewDay(ing.UserID, domain.Date{Year: 2026, Month: 3, Day: 14})
	require.NoError(t, err)

	meal, err := domain.NewMealFromRecipe(recipe, day.ID)
	require.NoError(t, err)

	require.Equal(t, recipe.ID, meal.RecipeID)
	require.Equal(t, day.ID, meal.DayID)
	require.Equal(t, recipe.Name, meal.Name)
	require.Len(t, meal.Lines, 1)
	require.NotEqual(t, recipe.Lines[0].ID, meal.Lines[0].ID, "meal lines must be fresh copies")
	require.Equal(t, recipe.Lines[0].IngredientID, meal.Lines[0].IngredientID)
	require.InDelta(t, recipe.Calories(), meal.Calories(), 1e-9)
	require.InDelta(t, recipe.Protein(), meal.Protein(), 1e-9)
}
