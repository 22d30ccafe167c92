package domain

import (
	"fmt"
	"time"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
)

// DayID uniquely identifies a calendar day of one user. It is derived
// deterministically from the owner and the date, so saving a day is naturally
// an upsert keyed on (user, date).
type DayID uuid.UUID

// String returns the canonical textual form of the id.
func (id DayID) String() string { return uuid.UUID(id).String() }

// dayIDNamespace is the fixed UUIDv5 namespace for deriving day ids.
var dayIDNamespace = uuid.MustParse("5b96f426-3f10-44f1-a263-9c26d4f30831") //nolint: gochecknoglobals

// Date is a calendar date without a time component.
type Date struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Compare orders dates chronologically: -1 when d is earlier than o, +1 when
// later, 0 when equal.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		if d.Year < o.Year {
			return -1
		}

		return 1
	case d.Month != o.Month:
		if d.Month < o.Month {
			return -1
		}

		return 1
	case d.Day != o.Day:
		if d.Day < o.Day {
			return -1
		}

		return 1
	default:
		return 0
	}
}

// Valid reports whether the date denotes a real calendar day.
func (d Date) Valid() bool {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 || d.Year < 1 {
		return false
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)

	return t.Day() == d.Day && t.Month() == d.Month
}

// DeriveDayID computes the deterministic id for a user's calendar day.
func DeriveDayID(userID UserID, date Date) DayID {
	return DayID(uuid.NewSHA1(dayIDNamespace, []byte(userID.String()+"/"+date.String())))
}

// DayItemKind discriminates the two kinds of entries a day can reference.
type DayItemKind string

const (
	// DayItemMeal tags a reference to a Meal aggregate.
	DayItemMeal DayItemKind = "meal"
	// DayItemFakeMeal tags a reference to a FakeMeal aggregate.
	DayItemFakeMeal DayItemKind = "fakeMeal"
)

// DayItemRef is a tagged reference to one entry of a day. The kind decides
// which repository the referenced id belongs to.
type DayItemRef struct {
	Kind DayItemKind `json:"kind"`
	ID   uuid.UUID   `json:"id"`
}

// Day is the per-date aggregate. It references its meals and quick-add
// entries by id only; the referenced documents live in their own
// repositories and are not guaranteed to exist merely because an id is
// listed. Readers must tolerate such orphan references.
type Day struct {
	// ID is derived from (user, date); see DeriveDayID.
	ID DayID `json:"id"`
	// UserID is the owner of the day.
	UserID UserID `json:"userId"`
	// Date is the calendar date this day represents.
	Date Date `json:"date"`

	// MealIDs lists referenced meals in insertion order, without duplicates.
	MealIDs []MealID `json:"mealIds"`
	// FakeMealIDs lists referenced quick-add entries in insertion order, without duplicates.
	FakeMealIDs []FakeMealID `json:"fakeMealIds"`

	// CreatedAt is the time the day was first materialized.
	CreatedAt time.Time `json:"createdAt"`
}

// NewDay constructs an empty day for the given user and date.
func NewDay(userID UserID, date Date) (*Day, error) {
	if !date.Valid() {
		return nil, serrors.With(serrors.ErrValidation, "invalid date %s", date)
	}

	return &Day{
		ID:        DeriveDayID(userID, date),
		UserID:    userID,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// AddMealID appends a meal reference, keeping the list an ordered set.
func (d *Day) AddMealID(id MealID) {
	for _, existing := range d.MealIDs {
		if existing == id {
			return
		}
	}
	d.MealIDs = append(d.MealIDs, id)
}

// AddFakeMealID appends a quick-add reference, keeping the list an ordered set.
func (d *Day) AddFakeMealID(id FakeMealID) {
	for _, existing := range d.FakeMealIDs {
		if existing == id {
			return
		}
	}
	d.FakeMealIDs = append(d.FakeMealIDs, id)
}

// RemoveItem drops the referenced entry from the matching list. It reports
// whether the reference was present.
func (d *Day) RemoveItem(ref DayItemRef) bool {
	switch ref.Kind {
	case DayItemMeal:
		for i, id := range d.MealIDs {
			if uuid.UUID(id) == ref.ID {
				d.MealIDs = append(d.MealIDs[:i], d.MealIDs[i+1:]...)

				return true
			}
		}
	case DayItemFakeMeal:
		for i, id := range d.FakeMealIDs {
			if uuid.UUID(id) == ref.ID {
				d.FakeMealIDs = append(d.FakeMealIDs[:i], d.FakeMealIDs[i+1:]...)

				return true
			}
		}
	}

	return false
}
