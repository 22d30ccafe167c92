package storage

import (
	"context"
	"tracker/pkg/domain"
)

// RecipeStorage defines persistence operations for the Recipe aggregate.
type RecipeStorage interface {
	// StoreRecipes upserts the given recipes keyed by their id.
	StoreRecipes(ctx context.Context, recipes ...domain.Recipe) error
	// RecipeByID fetches a recipe by id. Returns nil when not found.
	RecipeByID(ctx context.Context, id domain.RecipeID) (*domain.Recipe, error)
	// RecipesByIDs fetches the recipes with the given ids, preserving request
	// order and filtering out ids without a record.
	RecipesByIDs(ctx context.Context, ids []domain.RecipeID) ([]domain.Recipe, error)
	// UserRecipes returns all recipes of the given user.
	UserRecipes(ctx context.Context, userID domain.UserID) ([]domain.Recipe, error)
	// DeleteRecipe removes one recipe. Returns a not-found error when absent.
	DeleteRecipe(ctx context.Context, id domain.RecipeID) error
	// DeleteRecipes removes the given recipes; missing ids are ignored.
	DeleteRecipes(ctx context.Context, ids ...domain.RecipeID) error
	// DeleteUserRecipes removes all recipes of the given user.
	DeleteUserRecipes(ctx context.Context, userID domain.UserID) error
}

// IngredientStorage defines persistence operations for the Ingredient aggregate.
type IngredientStorage interface {
	// StoreIngredients upserts the given ingredients keyed by their id.
	StoreIngredients(ctx context.Context, ingredients ...domain.Ingredient) error
	// IngredientByID fetches an ingredient by id. Returns nil when not found.
	IngredientByID(ctx context.Context, id domain.IngredientID) (*domain.Ingredient, error)
	// IngredientsByIDs fetches the ingredients with the given ids, preserving
	// request order and filtering out ids without a record.
	IngredientsByIDs(ctx context.Context, ids []domain.IngredientID) ([]domain.Ingredient, error)
	// UserIngredients returns all ingredients of the given user.
	UserIngredients(ctx context.Context, userID domain.UserID) ([]domain.Ingredient, error)
	// DeleteIngredient removes one ingredient. Returns a not-found error when absent.
	DeleteIngredient(ctx context.Context, id domain.IngredientID) error
	// DeleteIngredients removes the given ingredients; missing ids are ignored.
	DeleteIngredients(ctx context.Context, ids ...domain.IngredientID) error
	// DeleteUserIngredients removes all ingredients of the given user.
	DeleteUserIngredients(ctx context.Context, userID domain.UserID) error
}

// ExternalRefStorage defines persistence operations for the
// ExternalIngredientRef aggregate.
type ExternalRefStorage interface {
	// StoreExternalRefs upserts the given mappings keyed by their id.
	StoreExternalRefs(ctx context.Context, refs ...domain.ExternalIngredientRef) error
	// ExternalRefByKey fetches the mapping for (user, provider, external id).
	// Returns nil when not found.
	ExternalRefByKey(ctx context.Context,
		userID domain.UserID,
		provider, externalID string) (*domain.ExternalIngredientRef, error)
	// UserExternalRefs returns all mappings of the given user.
	UserExternalRefs(ctx context.Context, userID domain.UserID) ([]domain.ExternalIngredientRef, error)
	// DeleteExternalRef removes one mapping. Returns a not-found error when absent.
	DeleteExternalRef(ctx context.Context, id domain.ExternalRefID) error
	// DeleteUserExternalRefs removes all mappings of the given user.
	DeleteUserExternalRefs(ctx context.Context, userID domain.UserID) error
}
