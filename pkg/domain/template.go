package domain

import (
	"strings"
	"time"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
)

// TemplateID uniquely identifies a workout template.
type TemplateID uuid.UUID

// String returns the canonical textual form of the id.
func (id TemplateID) String() string { return uuid.UUID(id).String() }

// ExerciseID identifies an exercise from the exercise catalog. Exercises are
// referenced by workout and template lines but have no repository of their own.
type ExerciseID uuid.UUID

// String returns the canonical textual form of the id.
func (id ExerciseID) String() string { return uuid.UUID(id).String() }

// TemplateLine is one planned exercise inside a workout template. Lines are
// ordered and unique by exercise within one template.
type TemplateLine struct {
	// ExerciseID references the catalog exercise.
	ExerciseID ExerciseID `json:"exerciseId"`
	// ExerciseName is a snapshot of the exercise name.
	ExerciseName string `json:"exerciseName"`
	// TargetSets is the planned number of sets.
	TargetSets int `json:"targetSets"`
	// TargetReps is the planned number of repetitions per set.
	TargetReps int `json:"targetReps"`
}

// WorkoutTemplate is a reusable workout plan. Deleting a template is a soft
// delete: the row stays present (excluded from normal reads and writes) until
// it is purged after the configured retention.
type WorkoutTemplate struct {
	// ID is the unique identifier of the template.
	ID TemplateID `json:"id"`
	// UserID is the owner of the template.
	UserID UserID `json:"userId"`

	// Name is the display name of the template.
	Name string `json:"name"`
	// Lines are the planned exercises, ordered, unique by exercise id.
	Lines []TemplateLine `json:"lines"`

	// Deleted marks the template as soft-deleted.
	Deleted bool `json:"-"`
	// DeletedAt is the time the soft delete happened; zero when not deleted.
	DeletedAt time.Time `json:"-"`

	// CreatedAt is the time the template was created.
	CreatedAt time.Time `json:"createdAt"`
}

// NewWorkoutTemplate constructs a template, validating the name and that no
// exercise appears twice.
func NewWorkoutTemplate(userID UserID, name string, lines []TemplateLine) (*WorkoutTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, serrors.With(serrors.ErrValidation, "template name must not be empty")
	}

	seen := map[ExerciseID]bool{}
	for _, l := range lines {
		if seen[l.ExerciseID] {
			return nil, serrors.With(serrors.ErrValidation, "duplicate exercise %s in template", l.ExerciseID)
		}
		seen[l.ExerciseID] = true
	}

	return &WorkoutTemplate{
		ID:        TemplateID(uuid.New()),
		UserID:    userID,
		Name:      name,
		Lines:     lines,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Reorder moves the line with the given exercise id to newIndex. The index is
// clamped into [0, len-1]; other lines shift accordingly. Line count and set
// membership are unchanged. Reordering an exercise that is not part of the
// template is an error.
func (t *WorkoutTemplate) Reorder(exerciseID ExerciseID, newIndex int) error {
	current := -1
	for i, l := range t.Lines {
		if l.ExerciseID == exerciseID {
			current = i

			break
		}
	}
	if current == -1 {
		return serrors.With(serrors.ErrNotFound, "exercise %s is not part of template %s", exerciseID, t.ID)
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(t.Lines)-1 {
		newIndex = len(t.Lines) - 1
	}

	line := t.Lines[current]
	rest := append(t.Lines[:current:current], t.Lines[current+1:]...)
	t.Lines = append(rest[:newIndex:newIndex], append([]TemplateLine{line}, rest[newIndex:]...)...)

	return nil
}

// SoftDelete flags the template as deleted at the given time. It is
// idempotent; the first deletion time wins.
func (t *WorkoutTemplate) SoftDelete(at time.Time) {
	if t.Deleted {
		return
	}
	t.Deleted = true
	t.DeletedAt = at
}
