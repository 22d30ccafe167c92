package domain

import (
	"strings"
	"time"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
)

// IngredientID uniquely identifies an ingredient.
type IngredientID uuid.UUID

// String returns the canonical textual form of the id.
func (id IngredientID) String() string { return uuid.UUID(id).String() }

// LineID uniquely identifies an ingredient line embedded in a meal or recipe.
type LineID uuid.UUID

// String returns the canonical textual form of the id.
func (id LineID) String() string { return uuid.UUID(id).String() }

// Ingredient is a food item with nutritional values per 100 grams. It is the
// source ingredient lines copy their data from.
type Ingredient struct {
	// ID is the unique identifier of the ingredient.
	ID IngredientID `json:"id"`
	// UserID is the owner of the ingredient.
	UserID UserID `json:"userId"`

	// Name is the display name of the ingredient.
	Name string `json:"name"`
	// CaloriesPer100g is the energy content per 100 grams.
	CaloriesPer100g float64 `json:"caloriesPer100g"`
	// ProteinPer100g is the protein content in grams per 100 grams.
	ProteinPer100g float64 `json:"proteinPer100g"`

	// CreatedAt is the time the ingredient was created.
	CreatedAt time.Time `json:"createdAt"`
}

// NewIngredient constructs an Ingredient, validating the name and that the
// per-100g values are not negative.
func NewIngredient(userID UserID, name string, caloriesPer100g, proteinPer100g float64) (*Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, serrors.With(serrors.ErrValidation, "ingredient name must not be empty")
	}
	if caloriesPer100g < 0 || proteinPer100g < 0 {
		return nil, serrors.With(serrors.ErrValidation, "nutritional values must not be negative")
	}

	return &Ingredient{
		ID:              IngredientID(uuid.New()),
		UserID:          userID,
		Name:            name,
		CaloriesPer100g: caloriesPer100g,
		ProteinPer100g:  proteinPer100g,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// IngredientLine is one quantified ingredient inside a meal or recipe. It
// carries a materialized copy of the ingredient's nutrition taken at line
// creation time, scaled linearly by the chosen quantity. Later edits to the
// source ingredient do not affect existing lines.
type IngredientLine struct {
	// ID is the unique identifier of this line.
	ID LineID `json:"id"`
	// IngredientID references the source ingredient.
	IngredientID IngredientID `json:"ingredientId"`

	// Name is a snapshot of the ingredient name at line creation time.
	Name string `json:"name"`
	// QuantityGrams is the chosen amount in grams.
	QuantityGrams float64 `json:"quantityGrams"`
	// Calories is the derived energy for this line (per100g value scaled by quantity).
	Calories float64 `json:"calories"`
	// Protein is the derived protein in grams for this line.
	Protein float64 `json:"protein"`
}

// NewIngredientLine materializes a line from an ingredient and a quantity in
// grams. Calories and protein are derived as value * grams / 100.
func NewIngredientLine(ing *Ingredient, quantityGrams float64) (IngredientLine, error) {
	if ing == nil {
		return IngredientLine{}, serrors.With(serrors.ErrValidation, "ingredient is required")
	}
	if quantityGrams <= 0 {
		return IngredientLine{}, serrors.With(serrors.ErrValidation, "quantity must be positive, got %v", quantityGrams)
	}

	return IngredientLine{
		ID:            LineID(uuid.New()),
		IngredientID:  ing.ID,
		Name:          ing.Name,
		QuantityGrams: quantityGrams,
		Calories:      ing.CaloriesPer100g * quantityGrams / 100,
		Protein:       ing.ProteinPer100g * quantityGrams / 100,
	}, nil
}

// Copy returns a duplicate of the line under a fresh line id. The ingredient
// reference and the materialized values are preserved.
func (l IngredientLine) Copy() IngredientLine {
	l.ID = LineID(uuid.New())

	return l
}

// sumLines recomputes calorie and protein totals over a line list.
func sumLines(lines []IngredientLine) (calories, protein float64) {
	for _, l := range lines {
		calories += l.Calories
		protein += l.Protein
	}

	return calories, protein
}
