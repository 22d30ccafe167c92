package domain_test

import (
	"testing"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDeriveDayID_Deterministic(t *testing.T) {
	user, err := domain.NewUser("eater@example.com", "Eater")
	require.NoError(t, err)
	other, err := domain.NewUser("other@example.com", "Other")
	require.NoError(t, err)

	date := domain.Date{Year: 2026, Month: 1, Day: 2}

	require.Equal(t, domain.DeriveDayID(user.ID, date), domain.DeriveDayID(user.ID, date))
	require.NotEqual(t, domain.DeriveDayID(user.ID, date), domain.DeriveDayID(other.ID, date),
		"same date of different users must map to different day ids")
	require.NotEqual(t, domain.DeriveDayID(user.ID, date),
		domain.DeriveDayID(user.ID, domain.Date{Year: 2026, Month: 1, Day: 3}))
}

func TestNewDay_RejectsInvalidDate(t *testing.T) {
	user, err := domain.NewUser("eater@example.com", "Eater")
	require.NoError(t, err)

	for _, date := range []domain.Date{
		{Year: 2026, Month: 2, Day: 30},
		{Year: 2026, Month: 13, Day: 1},
		{Year: 2026, Month: 0, Day: 1},
	} {
		_, err := domain.NewDay(user.ID, date)
		require.ErrorIs(t, err, serrors.ErrValidation, "date %s should be rejected", date)
	}
}

func TestDay_ReferenceListsAreOrderedSets(t *testing.T) {
	user, err := domain.NewUser("eater@example.com", "Eater")
	require.NoError(t, err)
	day, err := domain.NewDay(user.ID, domain.Date{Year: 2026, Month: 1, Day: 2})
	require.NoError(t, err)

	m1 := domain.MealID(uuid.New())
	m2 := domain.MealID(uuid.New())
	day.AddMealID(m1)
	day.AddMealID(m2)
	day.AddMealID(m1) // duplicate is ignored

	require.Equal(t, []domain.MealID{m1, m2}, day.MealIDs, "insertion order preserved, no duplicates")

	f1 := domain.FakeMealID(uuid.New())
	day.AddFakeMealID(f1)
	day.AddFakeMealID(f1)
	require.Equal(t, []domain.FakeMealID{f1}, day.FakeMealIDs)
}

func TestDay_RemoveItem(t *testing.T) {
	user, err := domain.NewUser("eater@example.com", "Eater")
	require.NoError(t, err)
	day, err := domain.NewDay(user.ID, domain.Date{Year: 2026, Month: 1, Day: 2})
	require.NoError(t, err)

	m1 := domain.MealID(uuid.New())
	m2 := domain.MealID(uuid.New())
	f1 := domain.FakeMealID(uuid.New())
	day.AddMealID(m1)
	day.AddMealID(m2)
	day.AddFakeMealID(f1)

	require.True(t, day.RemoveItem(domain.DayItemRef{Kind: domain.DayItemMeal, ID: uuid.UUID(m1)}))
	require.Equal(t, []domain.MealID{m2}, day.MealIDs)
	require.Equal(t, []domain.FakeMealID{f1}, day.FakeMealIDs, "other list untouched")

	// the tag decides which list is searched
	require.False(t, day.RemoveItem(domain.DayItemRef{Kind: domain.DayItemMeal, ID: uuid.UUID(f1)}))
	require.True(t, day.RemoveItem(domain.DayItemRef{Kind: domain.DayItemFakeMeal, ID: uuid.UUID(f1)}))

	// removing an id that is not listed reports false
	require.False(t, day.RemoveItem(domain.DayItemRef{Kind: domain.DayItemMeal, ID: uuid.New()}))
}
