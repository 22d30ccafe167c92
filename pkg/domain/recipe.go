package domain

import (
	"strings"
	"time"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
)

// RecipeID uniquely identifies a recipe.
type RecipeID uuid.UUID

// String returns the canonical textual form of the id.
func (id RecipeID) String() string { return uuid.UUID(id).String() }

// Recipe is a reusable composition of ingredient lines. Meals are generated
// from recipes by copying the lines; the recipe itself is never referenced by
// a day.
type Recipe struct {
	// ID is the unique identifier of the recipe.
	ID RecipeID `json:"id"`
	// UserID is the owner of the recipe.
	UserID UserID `json:"userId"`

	// Name is the display name of the recipe.
	Name string `json:"name"`
	// Lines are the embedded ingredient lines, in insertion order.
	Lines []IngredientLine `json:"lines"`

	// CreatedAt is the time the recipe was created.
	CreatedAt time.Time `json:"createdAt"`
}

// NewRecipe constructs a Recipe from already-materialized ingredient lines.
func NewRecipe(userID UserID, name string, lines []IngredientLine) (*Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, serrors.With(serrors.ErrValidation, "recipe name must not be empty")
	}

	return &Recipe{
		ID:        RecipeID(uuid.New()),
		UserID:    userID,
		Name:      name,
		Lines:     lines,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Calories returns the recipe's total energy, recomputed from its lines.
func (r *Recipe) Calories() float64 {
	c, _ := sumLines(r.Lines)

	return c
}

// Protein returns the recipe's total protein in grams, recomputed from its lines.
func (r *Recipe) Protein() float64 {
	_, p := sumLines(r.Lines)

	return p
}

// ReplaceLines swaps the recipe's line list. Totals need no invalidation
// since they are never stored.
func (r *Recipe) ReplaceLines(lines []IngredientLine) {
	r.Lines = lines
}
