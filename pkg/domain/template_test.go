package domain_test

import (
	"testing"
	"time"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testTemplate(t *testing.T, exerciseNames ...string) (*domain.WorkoutTemplate, []domain.ExerciseID) {
	t.Helper()

	user, err := domain.NewUser("lifter@example.com", "Lifter")
	require.NoError(t, err)

	ids := make([]domain.ExerciseID, 0, len(exerciseNames))
	lines := make([]domain.TemplateLine, 0, len(exerciseNames))
	for _, name := range exerciseNames {
		id := domain.ExerciseID(uuid.New())
		ids = append(ids, id)
		lines = append(lines, domain.TemplateLine{
			ExerciseID:   id,
			ExerciseName: name,
			TargetSets:   3,
			TargetReps:   8,
		})
	}

	tpl, err := domain.NewWorkoutTemplate(user.ID, "push day", lines)
	require.NoError(t, err)

	return tpl, ids
}

func exerciseOrder(tpl *domain.WorkoutTemplate) []domain.ExerciseID {
	out := make([]domain.ExerciseID, 0, len(tpl.Lines))
	for _, l := range tpl.Lines {
		out = append(out, l.ExerciseID)
	}

	return out
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name     string
		move     int // index of the exercise to move
		newIndex int
		want     []int // expected order as indexes into the original slice
	}{
		{name: "last to front", move: 2, newIndex: 0, want: []int{2, 0, 1}},
		{name: "first one right", move: 0, newIndex: 1, want: []int{1, 0, 2}},
		{name: "no-op move", move: 1, newIndex: 1, want: []int{0, 1, 2}},
		{name: "index clamped high", move: 0, newIndex: 10, want: []int{1, 2, 0}},
		{name: "index clamped low", move: 2, newIndex: -5, want: []int{2, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, ids := testTemplate(t, "bench press", "overhead press", "dips")

			require.NoError(t, tpl.Reorder(ids[tt.move], tt.newIndex))

			want := make([]domain.ExerciseID, 0, len(tt.want))
			for _, i := range tt.want {
				want = append(want, ids[i])
			}
			require.Equal(t, want, exerciseOrder(tpl))
			require.Len(t, tpl.Lines, 3, "reorder must not create or destroy lines")
		})
	}
}

func TestReorder_UnknownExercise(t *testing.T) {
	tpl, _ := testTemplate(t, "bench press", "dips")

	err := tpl.Reorder(domain.ExerciseID(uuid.New()), 0)
	require.ErrorIs(t, err, serrors.ErrNotFound)
	require.Len(t, tpl.Lines, 2)
}

func TestNewWorkoutTemplate_RejectsDuplicateExercise(t *testing.T) {
	user, err := domain.NewUser("lifter@example.com", "Lifter")
	require.NoError(t, err)

	id := domain.ExerciseID(uuid.New())
	_, err = domain.NewWorkoutTemplate(user.ID, "legs", []domain.TemplateLine{
		{ExerciseID: id, ExerciseName: "squat"},
		{ExerciseID: id, ExerciseName: "squat again"},
	})
	require.ErrorIs(t, err, serrors.ErrValidation)
}

func TestSoftDelete_FirstDeletionWins(t *testing.T) {
	tpl, _ := testTemplate(t, "bench press")

	first := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	tpl.SoftDelete(first)
	require.True(t, tpl.Deleted)
	require.Equal(t, first, tpl.DeletedAt)

	tpl.SoftDelete(first.Add(time.Hour))
	require.Equal(t, first, tpl.DeletedAt, "repeated soft delete must not move the timestamp")
}

func TestNewWorkoutFromTemplate(t *testing.T) {
	tpl, ids := testTemplate(t, "bench press", "dips")

	date := domain.Date{Year: 2026, Month: 5, Day: 2}
	w, err := domain.NewWorkoutFromTemplate(tpl, date)
	require.NoError(t, err)

	require.Equal(t, tpl.ID, w.TemplateID)
	require.Equal(t, tpl.UserID, w.UserID)
	require.Equal(t, date, w.Date)
	require.Len(t, w.Lines, 2)
	for i, l := range w.Lines {
		require.Equal(t, ids[i], l.ExerciseID)
		require.Equal(t, tpl.Lines[i].TargetSets, l.Sets)
		require.Equal(t, tpl.Lines[i].TargetReps, l.Reps)
		require.NotEqual(t, domain.WorkoutLineID{}, l.ID, "workout lines must get ids of their own")
	}
}
