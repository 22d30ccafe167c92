package tracker

import (
	"context"
	"tracker/pkg/domain"
)

// RecipeItem is one requested recipe ingredient: which ingredient and how
// many grams of it.
type RecipeItem struct {
	IngredientID domain.IngredientID
	Grams        float64
}

// DayDetail is a day together with its resolved entries. Listed references
// whose entity no longer exists are dropped silently.
type DayDetail struct {
	Day       domain.Day
	Meals     []domain.Meal
	FakeMeals []domain.FakeMeal
}

type Tracker interface {
	// CreateUser registers a new account. Email reuse is an already-exists error.
	CreateUser(ctx context.Context, email, name string) (*domain.User, error)
	// User fetches an account by id.
	User(ctx context.Context, id domain.UserID) (*domain.User, error)
	// DeleteUser removes the target account and every aggregate it owns, all
	// or nothing. Only the account owner may delete it.
	DeleteUser(ctx context.Context, actorID, targetID domain.UserID) error

	// CreateIngredient adds a food item with per-100g nutrition values.
	CreateIngredient(ctx context.Context,
		userID domain.UserID,
		name string,
		caloriesPer100g, proteinPer100g float64) (*domain.Ingredient, error)
	// UserIngredients lists the user's ingredients.
	UserIngredients(ctx context.Context, userID domain.UserID) ([]domain.Ingredient, error)
	// LinkExternalIngredient maps an external food database entry onto one of
	// the user's ingredients. Duplicate (provider, external id) is an
	// already-exists error.
	LinkExternalIngredient(ctx context.Context,
		userID domain.UserID,
		provider, externalID string,
		ingredientID domain.IngredientID) (*domain.ExternalIngredientRef, error)

	// CreateRecipe builds a recipe from ingredient quantities. Every
	// referenced ingredient must exist and belong to the user.
	CreateRecipe(ctx context.Context,
		userID domain.UserID,
		name string,
		items []RecipeItem) (*domain.Recipe, error)
	// UpdateRecipeLines replaces the recipe's lines with freshly
	// materialized ones. Meals generated earlier keep their copies.
	UpdateRecipeLines(ctx context.Context,
		userID domain.UserID,
		recipeID domain.RecipeID,
		items []RecipeItem) (*domain.Recipe, error)
	// UserRecipes lists the user's recipes.
	UserRecipes(ctx context.Context, userID domain.UserID) ([]domain.Recipe, error)
	// DeleteRecipe removes a recipe. Meals generated from it are unaffected.
	DeleteRecipe(ctx context.Context, userID domain.UserID, recipeID domain.RecipeID) error

	// AddMealsToDays generates one meal per (recipe, date) pair and attaches
	// them to the matching days, creating days as needed. The whole batch
	// commits or none of it does. Returns the updated days in date order of
	// the request.
	AddMealsToDays(ctx context.Context,
		userID domain.UserID,
		dates []domain.Date,
		recipeIDs []domain.RecipeID) ([]domain.Day, error)
	// AddFakeMealToDay logs a quick-add entry with directly entered totals.
	AddFakeMealToDay(ctx context.Context,
		userID domain.UserID,
		date domain.Date,
		name string,
		calories, protein float64) (*domain.FakeMeal, error)
	// RemoveItemFromDay drops one entry from a day and deletes the entity it
	// references, in one unit of work.
	RemoveItemFromDay(ctx context.Context,
		userID domain.UserID,
		dayID domain.DayID,
		ref domain.DayItemRef) error
	// Day fetches the day for a date with its entries resolved. Returns nil
	// detail when the day was never materialized.
	Day(ctx context.Context, userID domain.UserID, date domain.Date) (*DayDetail, error)
	// UserDays lists the user's days, newest date first.
	UserDays(ctx context.Context, userID domain.UserID) ([]domain.Day, error)

	// CreateWorkoutTemplate builds a reusable workout plan. Exercises are
	// unique within one template.
	CreateWorkoutTemplate(ctx context.Context,
		userID domain.UserID,
		name string,
		lines []domain.TemplateLine) (*domain.WorkoutTemplate, error)
	// ReorderTemplateExercise moves one planned exercise to a new position;
	// the index is clamped to the valid range.
	ReorderTemplateExercise(ctx context.Context,
		userID domain.UserID,
		templateID domain.TemplateID,
		exerciseID domain.ExerciseID,
		newIndex int) (*domain.WorkoutTemplate, error)
	// UserWorkoutTemplates lists the user's templates, excluding soft-deleted ones.
	UserWorkoutTemplates(ctx context.Context, userID domain.UserID) ([]domain.WorkoutTemplate, error)
	// DeleteWorkoutTemplate soft-deletes a template and schedules its
	// physical purge after the configured retention.
	DeleteWorkoutTemplate(ctx context.Context,
		userID domain.UserID,
		templateID domain.TemplateID) error

	// LogWorkout starts a workout from a template on the given date, copying
	// the planned lines.
	LogWorkout(ctx context.Context,
		userID domain.UserID,
		templateID domain.TemplateID,
		date domain.Date) (*domain.Workout, error)
	// UserWorkouts lists the user's workouts, newest date first.
	UserWorkouts(ctx context.Context, userID domain.UserID) ([]domain.Workout, error)
	// DeleteWorkout removes a logged workout.
	DeleteWorkout(ctx context.Context, userID domain.UserID, workoutID domain.WorkoutID) error
}
