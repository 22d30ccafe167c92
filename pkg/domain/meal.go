package domain

import (
	"strings"
	"time"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
)

// MealID uniquely identifies a meal.
type MealID uuid.UUID

// String returns the canonical textual form of the id.
func (id MealID) String() string { return uuid.UUID(id).String() }

// FakeMealID uniquely identifies a quick-add meal entry.
type FakeMealID uuid.UUID

// String returns the canonical textual form of the id.
func (id FakeMealID) String() string { return uuid.UUID(id).String() }

// Meal is one eaten meal on a specific day. Its ingredient lines are
// independent copies of the source recipe's lines, so editing the recipe
// afterwards never changes what was logged.
type Meal struct {
	// ID is the unique identifier of the meal.
	ID MealID `json:"id"`
	// UserID is the owner of the meal.
	UserID UserID `json:"userId"`
	// DayID is the day the meal belongs to.
	DayID DayID `json:"dayId"`
	// RecipeID references the recipe this meal was generated from.
	RecipeID RecipeID `json:"recipeId"`

	// Name is a snapshot of the recipe name at creation time.
	Name string `json:"name"`
	// Lines are the embedded ingredient lines, in insertion order.
	Lines []IngredientLine `json:"lines"`

	// CreatedAt is the time the meal was logged.
	CreatedAt time.Time `json:"createdAt"`
}

// NewMealFromRecipe generates a meal for the given day by copying the
// recipe's lines under fresh line ids. Ingredient references are preserved.
func NewMealFromRecipe(recipe *Recipe, dayID DayID) (*Meal, error) {
	if recipe == nil {
		return nil, serrors.With(serrors.ErrValidation, "recipe is required")
	}

	lines := make([]IngredientLine, 0, len(recipe.Lines))
	for _, l := range recipe.Lines {
		lines = append(lines, l.Copy())
	}

	return &Meal{
		ID:        MealID(uuid.New()),
		UserID:    recipe.UserID,
		DayID:     dayID,
		RecipeID:  recipe.ID,
		Name:      recipe.Name,
		Lines:     lines,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Calories returns the meal's total energy, recomputed from its lines.
func (m *Meal) Calories() float64 {
	c, _ := sumLines(m.Lines)

	return c
}

// Protein returns the meal's total protein in grams, recomputed from its lines.
func (m *Meal) Protein() float64 {
	_, p := sumLines(m.Lines)

	return p
}

// FakeMeal is a quick-add entry with directly entered totals, used when the
// user does not want to build the meal from ingredients.
type FakeMeal struct {
	// ID is the unique identifier of the entry.
	ID FakeMealID `json:"id"`
	// UserID is the owner of the entry.
	UserID UserID `json:"userId"`
	// DayID is the day the entry belongs to.
	DayID DayID `json:"dayId"`

	// Name is the display name of the entry.
	Name string `json:"name"`
	// Calories is the directly entered energy total.
	Calories float64 `json:"calories"`
	// Protein is the directly entered protein total in grams.
	Protein float64 `json:"protein"`

	// CreatedAt is the time the entry was logged.
	CreatedAt time.Time `json:"createdAt"`
}

// NewFakeMeal constructs a quick-add entry for the given day.
func NewFakeMeal(userID UserID, dayID DayID, name string, calories, protein float64) (*FakeMeal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, serrors.With(serrors.ErrValidation, "fake meal name must not be empty")
	}
	if calories < 0 || protein < 0 {
		return nil, serrors.With(serrors.ErrValidation, "nutritional values must not be negative")
	}

	return &FakeMeal{
		ID:        FakeMealID(uuid.New()),
		UserID:    userID,
		DayID:     dayID,
		Name:      name,
		Calories:  calories,
		Protein:   protein,
		CreatedAt: time.Now().UTC(),
	}, nil
}
