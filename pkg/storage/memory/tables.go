package memory

import (
	"cmp"
	"reflect"
	"slices"
	"tracker/pkg/domain"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

// JobRecord is one enqueued background job. The memory backend records jobs
// instead of executing them; uniqueness rules are not evaluated.
type JobRecord struct {
	Args river.JobArgs
	Opts *river.InsertOpts
}

// tables is the full table set of the backend. A session stages its writes on
// a deep copy; commit diffs the staged copy against the begin-time snapshot
// and applies only the session's own changes to the live tables, so
// overlapping sessions with disjoint writes both survive.
type tables struct {
	users        map[uuid.UUID]domain.User
	days         map[uuid.UUID]domain.Day
	meals        map[uuid.UUID]domain.Meal
	fakeMeals    map[uuid.UUID]domain.FakeMeal
	recipes      map[uuid.UUID]domain.Recipe
	ingredients  map[uuid.UUID]domain.Ingredient
	externalRefs map[uuid.UUID]domain.ExternalIngredientRef
	workouts     map[uuid.UUID]domain.Workout
	templates    map[uuid.UUID]domain.WorkoutTemplate
	jobs         []JobRecord

	// seq increments on every mutation and orders rows with equal timestamps,
	// so listings are stable. Cloned together with the data.
	seq     map[uuid.UUID]uint64
	nextSeq uint64
}

func newTables() *tables {
	return &tables{
		users:        map[uuid.UUID]domain.User{},
		days:         map[uuid.UUID]domain.Day{},
		meals:        map[uuid.UUID]domain.Meal{},
		fakeMeals:    map[uuid.UUID]domain.FakeMeal{},
		recipes:      map[uuid.UUID]domain.Recipe{},
		ingredients:  map[uuid.UUID]domain.Ingredient{},
		externalRefs: map[uuid.UUID]domain.ExternalIngredientRef{},
		workouts:     map[uuid.UUID]domain.Workout{},
		templates:    map[uuid.UUID]domain.WorkoutTemplate{},
		seq:          map[uuid.UUID]uint64{},
	}
}

// touch records insertion order for a row id.
func (t *tables) touch(id uuid.UUID) {
	if _, ok := t.seq[id]; !ok {
		t.seq[id] = t.nextSeq
		t.nextSeq++
	}
}

func cloneDay(d domain.Day) domain.Day {
	d.MealIDs = slices.Clone(d.MealIDs)
	d.FakeMealIDs = slices.Clone(d.FakeMealIDs)

	return d
}

func cloneMeal(m domain.Meal) domain.Meal {
	m.Lines = slices.Clone(m.Lines)

	return m
}

func cloneRecipe(r domain.Recipe) domain.Recipe {
	r.Lines = slices.Clone(r.Lines)

	return r
}

func cloneWorkout(w domain.Workout) domain.Workout {
	w.Lines = slices.Clone(w.Lines)

	return w
}

func cloneTemplate(t domain.WorkoutTemplate) domain.WorkoutTemplate {
	t.Lines = slices.Clone(t.Lines)

	return t
}

// clone deep-copies the table set. Entity values embed only value types and
// slices, so per-table map copies plus slice clones are a full deep copy.
func (t *tables) clone() *tables {
	c := newTables()
	for id, row := range t.users {
		c.users[id] = row
	}
	for id, row := range t.days {
		c.days[id] = cloneDay(row)
	}
	for id, row := range t.meals {
		c.meals[id] = cloneMeal(row)
	}
	for id, row := range t.fakeMeals {
		c.fakeMeals[id] = row
	}
	for id, row := range t.recipes {
		c.recipes[id] = cloneRecipe(row)
	}
	for id, row := range t.ingredients {
		c.ingredients[id] = row
	}
	for id, row := range t.externalRefs {
		c.externalRefs[id] = row
	}
	for id, row := range t.workouts {
		c.workouts[id] = cloneWorkout(row)
	}
	for id, row := range t.templates {
		c.templates[id] = cloneTemplate(row)
	}
	c.jobs = slices.Clone(t.jobs)
	for id, s := range t.seq {
		c.seq[id] = s
	}
	c.nextSeq = t.nextSeq

	return c
}

// mergeMap applies one session's changes to a live table: rows the session
// added or modified relative to its begin-time snapshot overwrite the live
// row, rows it deleted are deleted. Rows the session never touched are left
// alone, so a concurrent session's committed writes survive. Rows both
// sessions touched resolve last-commit-wins.
func mergeMap[V any](live, origin, staged map[uuid.UUID]V) {
	for id, row := range staged {
		orig, ok := origin[id]
		if !ok || !reflect.DeepEqual(orig, row) {
			live[id] = row
		}
	}
	for id := range origin {
		if _, ok := staged[id]; !ok {
			delete(live, id)
		}
	}
}

// apply merges a finished session into the live table set. origin is the
// snapshot the session was begun from, staged the table set it mutated.
func (t *tables) apply(origin, staged *tables) {
	mergeMap(t.users, origin.users, staged.users)
	mergeMap(t.days, origin.days, staged.days)
	mergeMap(t.meals, origin.meals, staged.meals)
	mergeMap(t.fakeMeals, origin.fakeMeals, staged.fakeMeals)
	mergeMap(t.recipes, origin.recipes, staged.recipes)
	mergeMap(t.ingredients, origin.ingredients, staged.ingredients)
	mergeMap(t.externalRefs, origin.externalRefs, staged.externalRefs)
	mergeMap(t.workouts, origin.workouts, staged.workouts)
	mergeMap(t.templates, origin.templates, staged.templates)

	// jobs are append-only; take the session's own tail
	t.jobs = append(t.jobs, staged.jobs[len(origin.jobs):]...)

	// rows first inserted by this session keep their relative insertion order
	fresh := make([]uuid.UUID, 0)
	for id, s := range staged.seq {
		if s >= origin.nextSeq {
			fresh = append(fresh, id)
		}
	}
	slices.SortFunc(fresh, func(a, b uuid.UUID) int {
		return cmp.Compare(staged.seq[a], staged.seq[b])
	})
	for _, id := range fresh {
		t.touch(id)
	}
}
