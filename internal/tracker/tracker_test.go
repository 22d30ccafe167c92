package tracker_test

import (
	"context"
	"testing"
	"time"
	"tracker/internal/tracker"
	"tracker/pkg/domain"
	"tracker/pkg/logger"
	"tracker/pkg/storage/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func newUUID() uuid.UUID { return uuid.New() }

func newTestTracker(t *testing.T) (tracker.Tracker, *memory.Memory) {
	t.Helper()

	mem := memory.New()
	trk := tracker.New(mem, tracker.Options{
		MaxDaysPerCall:         31,
		TemplatePurgeRetention: 720 * time.Hour,
	})

	return trk, mem
}

func createUser(t *testing.T, trk tracker.Tracker, email string) domain.User {
	t.Helper()

	u, err := trk.CreateUser(context.Background(), email, "Test User")
	require.NoError(t, err)

	return *u
}

func createIngredient(t *testing.T,
	trk tracker.Tracker,
	userID domain.UserID,
	name string,
	cal, prot float64) domain.Ingredient {
	t.Helper()

	ing, err := trk.CreateIngredient(context.Background(), userID, name, cal, prot)
	require.NoError(t, err)

	return *ing
}

func createRecipe(t *testing.T,
	trk tracker.Tracker,
	userID domain.UserID,
	name string,
	items ...tracker.RecipeItem) domain.Recipe {
	t.Helper()

	r, err := trk.CreateRecipe(context.Background(), userID, name, items)
	require.NoError(t, err)

	return *r
}

func createTemplate(t *testing.T,
	trk tracker.Tracker,
	userID domain.UserID,
	name string,
	lines ...domain.TemplateLine) domain.WorkoutTemplate {
	t.Helper()

	tpl, err := trk.CreateWorkoutTemplate(context.Background(), userID, name, lines)
	require.NoError(t, err)

	return *tpl
}

func templateLine(name string, sets, reps int) domain.TemplateLine {
	return domain.TemplateLine{
		ExerciseID:   domain.ExerciseID(newUUID()),
		ExerciseName: name,
		TargetSets:   sets,
		TargetReps:   reps,
	}
}
