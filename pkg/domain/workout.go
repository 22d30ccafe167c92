package domain

import (
	"time"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
)

// WorkoutID uniquely identifies a logged workout.
type WorkoutID uuid.UUID

// String returns the canonical textual form of the id.
func (id WorkoutID) String() string { return uuid.UUID(id).String() }

// WorkoutLineID uniquely identifies a line inside one workout.
type WorkoutLineID uuid.UUID

// String returns the canonical textual form of the id.
func (id WorkoutLineID) String() string { return uuid.UUID(id).String() }

// WorkoutLine is one performed exercise inside a workout. Lines belong to
// exactly one workout and are ordered.
type WorkoutLine struct {
	// ID is the unique identifier of this line.
	ID WorkoutLineID `json:"id"`
	// ExerciseID references the catalog exercise.
	ExerciseID ExerciseID `json:"exerciseId"`
	// ExerciseName is a snapshot of the exercise name.
	ExerciseName string `json:"exerciseName"`

	// Sets is the number of performed sets.
	Sets int `json:"sets"`
	// Reps is the number of repetitions per set.
	Reps int `json:"reps"`
	// WeightKg is the used weight in kilograms; zero for bodyweight exercises.
	WeightKg float64 `json:"weightKg"`
}

// Workout is one logged training session.
type Workout struct {
	// ID is the unique identifier of the workout.
	ID WorkoutID `json:"id"`
	// UserID is the owner of the workout.
	UserID UserID `json:"userId"`
	// TemplateID references the template the workout was started from; zero
	// when the workout was logged free-form.
	TemplateID TemplateID `json:"templateId"`

	// Date is the calendar date of the session.
	Date Date `json:"date"`
	// Lines are the performed exercises, in order.
	Lines []WorkoutLine `json:"lines"`

	// CreatedAt is the time the workout was logged.
	CreatedAt time.Time `json:"createdAt"`
}

// NewWorkoutFromTemplate starts a workout on the given date by copying the
// template's planned lines under fresh line ids.
func NewWorkoutFromTemplate(template *WorkoutTemplate, date Date) (*Workout, error) {
	if template == nil {
		return nil, serrors.With(serrors.ErrValidation, "template is required")
	}
	if !date.Valid() {
		return nil, serrors.With(serrors.ErrValidation, "invalid date %s", date)
	}

	lines := make([]WorkoutLine, 0, len(template.Lines))
	for _, l := range template.Lines {
		lines = append(lines, WorkoutLine{
			ID:           WorkoutLineID(uuid.New()),
			ExerciseID:   l.ExerciseID,
			ExerciseName: l.ExerciseName,
			Sets:         l.TargetSets,
			Reps:         l.TargetReps,
		})
	}

	return &Workout{
		ID:         WorkoutID(uuid.New()),
		UserID:     template.UserID,
		TemplateID: template.ID,
		Date:       date,
		Lines:      lines,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
