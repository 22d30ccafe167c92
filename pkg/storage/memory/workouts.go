package memory

import (
	"context"
	"sort"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
)

func (m *Memory) StoreWorkouts(ctx context.Context, workouts ...domain.Workout) error {
	if len(workouts) == 0 {
		return nil
	}

	return m.withWrite(ctx, "StoreWorkouts", func(t *tables) error {
		for _, w := range workouts {
			id := uuid.UUID(w.ID)
			t.workouts[id] = cloneWorkout(w)
			t.touch(id)
		}

		return nil
	})
}

func (m *Memory) WorkoutByID(ctx context.Context, id domain.WorkoutID) (*domain.Workout, error) {
	var out *domain.Workout
	err := m.withRead(ctx, func(t *tables) error {
		if row, ok := t.workouts[uuid.UUID(id)]; ok {
			row = cloneWorkout(row)
			out = &row
		}

		return nil
	})

	return out, err
}

func (m *Memory) UserWorkouts(ctx context.Context, userID domain.UserID) ([]domain.Workout, error) {
	var out []domain.Workout
	err := m.withRead(ctx, func(t *tables) error {
		for _, row := range t.workouts {
			if row.UserID == userID {
				out = append(out, cloneWorkout(row))
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Compare(out[j].Date) > 0
	})

	return out, nil
}

func (m *Memory) DeleteWorkout(ctx context.Context, id domain.WorkoutID) error {
	return m.withWrite(ctx, "DeleteWorkout", func(t *tables) error {
		if _, ok := t.workouts[uuid.UUID(id)]; !ok {
			return serrors.With(serrors.ErrNotFound, "workout %s not found", id)
		}
		delete(t.workouts, uuid.UUID(id))

		return nil
	})
}

func (m *Memory) DeleteWorkouts(ctx context.Context, ids ...domain.WorkoutID) error {
	if len(ids) == 0 {
		return nil
	}

	return m.withWrite(ctx, "DeleteWorkouts", func(t *tables) error {
		for _, id := range ids {
			delete(t.workouts, uuid.UUID(id))
		}

		return nil
	})
}

func (m *Memory) DeleteUserWorkouts(ctx context.Context, userID domain.UserID) error {
	return m.withWrite(ctx, "DeleteUserWorkouts", func(t *tables) error {
		for id, row := range t.workouts {
			if row.UserID == userID {
				delete(t.workouts, id)
			}
		}

		return nil
	})
}

func (m *Memory) StoreTemplates(ctx context.Context, templates ...domain.WorkoutTemplate) error {
	if len(templates) == 0 {
		return nil
	}

	return m.withWrite(ctx, "StoreTemplates", func(t *tables) error {
		for _, tpl := range templates {
			id := uuid.UUID(tpl.ID)
			t.templates[id] = cloneTemplate(tpl)
			t.touch(id)
		}

		return nil
	})
}

func (m *Memory) TemplateByID(ctx context.Context, id domain.TemplateID) (*domain.WorkoutTemplate, error) {
	var out *domain.WorkoutTemplate
	err := m.withRead(ctx, func(t *tables) error {
		if row, ok := t.templates[uuid.UUID(id)]; ok && !row.Deleted {
			row = cloneTemplate(row)
			out = &row
		}

		return nil
	})

	return out, err
}

func (m *Memory) TemplateByIDAnyState(ctx context.Context, id domain.TemplateID) (*domain.WorkoutTemplate, error) {
	var out *domain.WorkoutTemplate
	err := m.withRead(ctx, func(t *tables) error {
		if row, ok := t.templates[uuid.UUID(id)]; ok {
			row = cloneTemplate(row)
			out = &row
		}

		return nil
	})

	return out, err
}

func (m *Memory) UserTemplates(ctx context.Context, userID domain.UserID) ([]domain.WorkoutTemplate, error) {
	var out []domain.WorkoutTemplate
	err := m.withRead(ctx, func(t *tables) error {
		for _, row := range t.templates {
			if row.UserID == userID && !row.Deleted {
				out = append(out, cloneTemplate(row))
			}
		}
		sortByInsertion(t, out, func(tpl domain.WorkoutTemplate) uuid.UUID { return uuid.UUID(tpl.ID) })

		return nil
	})

	return out, err
}

func (m *Memory) DeleteTemplate(ctx context.Context, id domain.TemplateID) error {
	return m.withWrite(ctx, "DeleteTemplate", func(t *tables) error {
		if _, ok := t.templates[uuid.UUID(id)]; !ok {
			return serrors.With(serrors.ErrNotFound, "template %s not found", id)
		}
		delete(t.templates, uuid.UUID(id))

		return nil
	})
}

func (m *Memory) PurgeTemplate(ctx context.Context, id domain.TemplateID) error {
	return m.withWrite(ctx, "PurgeTemplate", func(t *tables) error {
		if row, ok := t.templates[uuid.UUID(id)]; ok && row.Deleted {
			delete(t.templates, uuid.UUID(id))
		}

		return nil
	})
}

func (m *Memory) DeleteUserTemplates(ctx context.Context, userID domain.UserID) error {
	return m.withWrite(ctx, "DeleteUserTemplates", func(t *tables) error {
		for id, row := range t.templates {
			if row.UserID == userID {
				delete(t.templates, id)
			}
		}

		return nil
	})
}
