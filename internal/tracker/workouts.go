package tracker

import (
	"context"
	"fmt"
	"time"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"

	"github.com/riverqueue/river"
)

// CreateWorkoutTemplate builds a reusable workout plan.
func (t *tracker) CreateWorkoutTemplate(ctx context.Context,
	userID domain.UserID,
	name string,
	lines []domain.TemplateLine) (*domain.WorkoutTemplate, error) {
	if _, err := t.User(ctx, userID); err != nil {
		return nil, err
	}

	template, err := domain.NewWorkoutTemplate(userID, name, lines)
	if err != nil {
		return nil, err
	}

	if err := t.storage.StoreTemplates(ctx, *template); err != nil {
		return nil, fmt.Errorf("could not store template: %w", err)
	}

	return template, nil
}

// ReorderTemplateExercise moves one planned exercise to a new position and
// saves the template.
func (t *tracker) ReorderTemplateExercise(ctx context.Context,
	userID domain.UserID,
	templateID domain.TemplateID,
	exerciseID domain.ExerciseID,
	newIndex int) (*domain.WorkoutTemplate, error) {
	var template *domain.WorkoutTemplate
	err := t.storage.WithTx(ctx, func(ctx context.Context) error {
		var err error
		template, err = t.ownedTemplate(ctx, userID, templateID)
		if err != nil {
			return err
		}

		if err := template.Reorder(exerciseID, newIndex); err != nil {
			return err
		}

		return t.storage.StoreTemplates(ctx, *template)
	})
	if err != nil {
		return nil, err
	}

	return template, nil
}

// UserWorkoutTemplates lists the user's templates, excluding soft-deleted ones.
func (t *tracker) UserWorkoutTemplates(ctx context.Context,
	userID domain.UserID) ([]domain.WorkoutTemplate, error) {
	templates, err := t.storage.UserTemplates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not get user templates: %w", err)
	}

	return templates, nil
}

// DeleteWorkoutTemplate soft-deletes a template and schedules its physical
// purge after the configured retention, in one session. The purge job is
// unique per template, so repeated deletions do not pile up jobs.
func (t *tracker) DeleteWorkoutTemplate(ctx context.Context,
	userID domain.UserID,
	templateID domain.TemplateID) error {
	return t.storage.WithTx(ctx, func(ctx context.Context) error {
		template, err := t.ownedTemplate(ctx, userID, templateID)
		if err != nil {
			return err
		}

		template.SoftDelete(time.Now().UTC())

		if err := t.storage.StoreTemplates(ctx, *template); err != nil {
			return fmt.Errorf("could not store template: %w", err)
		}

		if _, err := t.storage.AddJob(ctx, PurgeTemplateArgs{
			TemplateID: template.ID,
		}, &river.InsertOpts{
			ScheduledAt: template.DeletedAt.Add(t.options.TemplatePurgeRetention),
		}); err != nil {
			return fmt.Errorf("could not add purge job: %w", err)
		}

		return nil
	})
}

// LogWorkout starts a workout from a template on the given date.
func (t *tracker) LogWorkout(ctx context.Context,
	userID domain.UserID,
	templateID domain.TemplateID,
	date domain.Date) (*domain.Workout, error) {
	template, err := t.ownedTemplate(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}

	workout, err := domain.NewWorkoutFromTemplate(template, date)
	if err != nil {
		return nil, err
	}

	if err := t.storage.StoreWorkouts(ctx, *workout); err != nil {
		return nil, fmt.Errorf("could not store workout: %w", err)
	}

	return workout, nil
}

// UserWorkouts lists the user's workouts, newest date first.
func (t *tracker) UserWorkouts(ctx context.Context, userID domain.UserID) ([]domain.Workout, error) {
	workouts, err := t.storage.UserWorkouts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not get user workouts: %w", err)
	}

	return workouts, nil
}

// DeleteWorkout removes a logged workout.
func (t *tracker) DeleteWorkout(ctx context.Context,
	userID domain.UserID,
	workoutID domain.WorkoutID) error {
	return t.storage.WithTx(ctx, func(ctx context.Context) error {
		workout, err := t.storage.WorkoutByID(ctx, workoutID)
		if err != nil {
			return fmt.Errorf("could not get workout: %w", err)
		}
		if workout == nil {
			return serrors.With(serrors.ErrNotFound, "workout %s not found", workoutID)
		}
		if workout.UserID != userID {
			return serrors.With(serrors.ErrPermission, "workout %s does not belong to user %s", workoutID, userID)
		}

		return t.storage.DeleteWorkout(ctx, workoutID)
	})
}

// ownedTemplate loads a live template and verifies ownership.
func (t *tracker) ownedTemplate(ctx context.Context,
	userID domain.UserID,
	templateID domain.TemplateID) (*domain.WorkoutTemplate, error) {
	template, err := t.storage.TemplateByID(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("could not get template: %w", err)
	}
	if template == nil {
		return nil, serrors.With(serrors.ErrNotFound, "template %s not found", templateID)
	}
	if template.UserID != userID {
		return nil, serrors.With(serrors.ErrPermission, "template %s does not belong to user %s", templateID, userID)
	}

	return template, nil
}
