package storage

import (
	"context"
	"tracker/pkg/domain"
)

// MealStorage defines persistence operations for the Meal aggregate.
// Delete semantics follow the same strict/lenient split as DayStorage.
type MealStorage interface {
	// StoreMeals upserts the given meals keyed by their id.
	StoreMeals(ctx context.Context, meals ...domain.Meal) error
	// MealByID fetches a meal by id. Returns nil when not found.
	MealByID(ctx context.Context, id domain.MealID) (*domain.Meal, error)
	// MealsByIDs fetches the meals with the given ids, preserving request
	// order and filtering out ids without a record.
	MealsByIDs(ctx context.Context, ids []domain.MealID) ([]domain.Meal, error)
	// UserMeals returns all meals of the given user.
	UserMeals(ctx context.Context, userID domain.UserID) ([]domain.Meal, error)
	// DeleteMeal removes one meal. Returns a not-found error when absent.
	DeleteMeal(ctx context.Context, id domain.MealID) error
	// DeleteMeals removes the given meals; missing ids are ignored.
	DeleteMeals(ctx context.Context, ids ...domain.MealID) error
	// DeleteUserMeals removes all meals of the given user.
	DeleteUserMeals(ctx context.Context, userID domain.UserID) error
}

// FakeMealStorage defines persistence operations for the FakeMeal aggregate.
type FakeMealStorage interface {
	// StoreFakeMeals upserts the given entries keyed by their id.
	StoreFakeMeals(ctx context.Context, fakeMeals ...domain.FakeMeal) error
	// FakeMealByID fetches an entry by id. Returns nil when not found.
	FakeMealByID(ctx context.Context, id domain.FakeMealID) (*domain.FakeMeal, error)
	// FakeMealsByIDs fetches the entries with the given ids, preserving
	// request order and filtering out ids without a record.
	FakeMealsByIDs(ctx context.Context, ids []domain.FakeMealID) ([]domain.FakeMeal, error)
	// UserFakeMeals returns all entries of the given user.
	UserFakeMeals(ctx context.Context, userID domain.UserID) ([]domain.FakeMeal, error)
	// DeleteFakeMeal removes one entry. Returns a not-found error when absent.
	DeleteFakeMeal(ctx context.Context, id domain.FakeMealID) error
	// DeleteFakeMeals removes the given entries; missing ids are ignored.
	DeleteFakeMeals(ctx context.Context, ids ...domain.FakeMealID) error
	// DeleteUserFakeMeals removes all entries of the given user.
	DeleteUserFakeMeals(ctx context.Context, userID domain.UserID) error
}
