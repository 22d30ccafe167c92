package storage

import (
	"context"
	"tracker/pkg/domain"
)

// WorkoutStorage defines persistence operations for the Workout aggregate.
type WorkoutStorage interface {
	// StoreWorkouts upserts the given workouts keyed by their id.
	StoreWorkouts(ctx context.Context, workouts ...domain.Workout) error
	// WorkoutByID fetches a workout by id. Returns nil when not found.
	WorkoutByID(ctx context.Context, id domain.WorkoutID) (*domain.Workout, error)
	// UserWorkouts returns all workouts of the given user, newest date first.
	UserWorkouts(ctx context.Context, userID domain.UserID) ([]domain.Workout, error)
	// DeleteWorkout removes one workout. Returns a not-found error when absent.
	DeleteWorkout(ctx context.Context, id domain.WorkoutID) error
	// DeleteWorkouts removes the given workouts; missing ids are ignored.
	DeleteWorkouts(ctx context.Context, ids ...domain.WorkoutID) error
	// DeleteUserWorkouts removes all workouts of the given user.
	DeleteUserWorkouts(ctx context.Context, userID domain.UserID) error
}

// TemplateStorage defines persistence operations for the WorkoutTemplate
// aggregate. Soft-deleted templates are excluded from every method except
// TemplateByIDAnyState, PurgeTemplate and DeleteUserTemplates: the row stays
// physically present for referential integrity until purged.
type TemplateStorage interface {
	// StoreTemplates upserts the given templates keyed by their id, including
	// their soft-delete state.
	StoreTemplates(ctx context.Context, templates ...domain.WorkoutTemplate) error
	// TemplateByID fetches a template by id, excluding soft-deleted rows.
	// Returns nil when not found.
	TemplateByID(ctx context.Context, id domain.TemplateID) (*domain.WorkoutTemplate, error)
	// TemplateByIDAnyState fetches a template regardless of its soft-delete
	// state. Returns nil when the row is physically absent.
	TemplateByIDAnyState(ctx context.Context, id domain.TemplateID) (*domain.WorkoutTemplate, error)
	// UserTemplates returns the user's templates, excluding soft-deleted rows.
	UserTemplates(ctx context.Context, userID domain.UserID) ([]domain.WorkoutTemplate, error)
	// DeleteTemplate physically removes one template row in any state.
	// Returns a not-found error when absent.
	DeleteTemplate(ctx context.Context, id domain.TemplateID) error
	// PurgeTemplate physically removes a soft-deleted template row. A missing
	// or not-soft-deleted row is a no-op.
	PurgeTemplate(ctx context.Context, id domain.TemplateID) error
	// DeleteUserTemplates removes all template rows of the given user,
	// soft-deleted ones included.
	DeleteUserTemplates(ctx context.Context, userID domain.UserID) error
}
