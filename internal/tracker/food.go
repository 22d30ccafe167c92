package tracker

import (
	"context"
	"fmt"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"
)

// CreateIngredient adds a food item with nutrition values per 100 grams.
func (t *tracker) CreateIngredient(ctx context.Context,
	userID domain.UserID,
	name string,
	caloriesPer100g, proteinPer100g float64) (*domain.Ingredient, error) {
	ingredient, err := domain.NewIngredient(userID, name, caloriesPer100g, proteinPer100g)
	if err != nil {
		return nil, err
	}

	if err := t.storage.StoreIngredients(ctx, *ingredient); err != nil {
		return nil, fmt.Errorf("could not store ingredient: %w", err)
	}

	return ingredient, nil
}

// UserIngredients lists the user's ingredients.
func (t *tracker) UserIngredients(ctx context.Context, userID domain.UserID) ([]domain.Ingredient, error) {
	ingredients, err := t.storage.UserIngredients(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not get user ingredients: %w", err)
	}

	return ingredients, nil
}

// LinkExternalIngredient maps an external food database entry onto one of the
// user's ingredients.
func (t *tracker) LinkExternalIngredient(ctx context.Context,
	userID domain.UserID,
	provider, externalID string,
	ingredientID domain.IngredientID) (*domain.ExternalIngredientRef, error) {
	ref, err := domain.NewExternalIngredientRef(userID, provider, externalID, ingredientID)
	if err != nil {
		return nil, err
	}

	err = t.storage.WithTx(ctx, func(ctx context.Context) error {
		ingredient, err := t.storage.IngredientByID(ctx, ingredientID)
		if err != nil {
			return fmt.Errorf("could not get ingredient: %w", err)
		}
		if ingredient == nil {
			return serrors.With(serrors.ErrNotFound, "ingredient %s not found", ingredientID)
		}
		if ingredient.UserID != userID {
			return serrors.With(serrors.ErrPermission, "ingredient %s does not belong to user %s", ingredientID, userID)
		}

		existing, err := t.storage.ExternalRefByKey(ctx, userID, ref.Provider, ref.ExternalID)
		if err != nil {
			return fmt.Errorf("could not check external ref: %w", err)
		}
		if existing != nil {
			return serrors.With(serrors.ErrAlreadyExists,
				"external food %s/%s is already linked", ref.Provider, ref.ExternalID)
		}

		return t.storage.StoreExternalRefs(ctx, *ref)
	})
	if err != nil {
		return nil, err
	}

	return ref, nil
}

// materializeLines resolves recipe items into ingredient lines, validating
// that every referenced ingredient exists and belongs to the user before any
// line is built.
func (t *tracker) materializeLines(ctx context.Context,
	userID domain.UserID,
	items []RecipeItem) ([]domain.IngredientLine, error) {
	if len(items) == 0 {
		return nil, nil
	}

	ids := make([]domain.IngredientID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.IngredientID)
	}

	ingredients, err := t.storage.IngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("could not get ingredients: %w", err)
	}

	byID := make(map[domain.IngredientID]domain.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}

	lines := make([]domain.IngredientLine, 0, len(items))
	for _, item := range items {
		ing, ok := byID[item.IngredientID]
		if !ok {
			return nil, serrors.With(serrors.ErrNotFound, "ingredient %s not found", item.IngredientID)
		}
		if ing.UserID != userID {
			return nil, serrors.With(serrors.ErrPermission,
				"ingredient %s does not belong to user %s", item.IngredientID, userID)
		}

		line, err := domain.NewIngredientLine(&ing, item.Grams)
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// CreateRecipe builds a recipe from ingredient quantities.
func (t *tracker) CreateRecipe(ctx context.Context,
	userID domain.UserID,
	name string,
	items []RecipeItem) (*domain.Recipe, error) {
	lines, err := t.materializeLines(ctx, userID, items)
	if err != nil {
		return nil, err
	}

	recipe, err := domain.NewRecipe(userID, name, lines)
	if err != nil {
		return nil, err
	}

	if err := t.storage.StoreRecipes(ctx, *recipe); err != nil {
		return nil, fmt.Errorf("could not store recipe: %w", err)
	}

	return recipe, nil
}

// UpdateRecipeLines replaces the recipe's lines with freshly materialized
// ones. Meals generated from the recipe earlier keep their own copies.
func (t *tracker) UpdateRecipeLines(ctx context.Context,
	userID domain.UserID,
	recipeID domain.RecipeID,
	items []RecipeItem) (*domain.Recipe, error) {
	var recipe *domain.Recipe
	err := t.storage.WithTx(ctx, func(ctx context.Context) error {
		var err error
		recipe, err = t.ownedRecipe(ctx, userID, recipeID)
		if err != nil {
			return err
		}

		lines, err := t.materializeLines(ctx, userID, items)
		if err != nil {
			return err
		}

		recipe.ReplaceLines(lines)

		return t.storage.StoreRecipes(ctx, *recipe)
	})
	if err != nil {
		return nil, err
	}

	return recipe, nil
}

// UserRecipes lists the user's recipes.
func (t *tracker) UserRecipes(ctx context.Context, userID domain.UserID) ([]domain.Recipe, error) {
	recipes, err := t.storage.UserRecipes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not get user recipes: %w", err)
	}

	return recipes, nil
}

// DeleteRecipe removes a recipe. Meals generated from it keep their copied
// lines and are unaffected.
func (t *tracker) DeleteRecipe(ctx context.Context, userID domain.UserID, recipeID domain.RecipeID) error {
	return t.storage.WithTx(ctx, func(ctx context.Context) error {
		if _, err := t.ownedRecipe(ctx, userID, recipeID); err != nil {
			return err
		}

		return t.storage.DeleteRecipe(ctx, recipeID)
	})
}

// ownedRecipe loads a recipe and verifies ownership.
func (t *tracker) ownedRecipe(ctx context.Context,
	userID domain.UserID,
	recipeID domain.RecipeID) (*domain.Recipe, error) {
	recipe, err := t.storage.RecipeByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("could not get recipe: %w", err)
	}
	if recipe == nil {
		return nil, serrors.With(serrors.ErrNotFound, "recipe %s not found", recipeID)
	}
	if recipe.UserID != userID {
		return nil, serrors.With(serrors.ErrPermission, "recipe %s does not belong to user %s", recipeID, userID)
	}

	return recipe, nil
}
