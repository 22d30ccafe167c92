package postgres

import (
	"context"
	"fmt"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	workoutsTable  = "workouts"
	templatesTable = "workout_templates"
)

func (p *PgSQL) StoreWorkouts(ctx context.Context, workouts ...domain.Workout) error {
	if len(workouts) == 0 {
		return nil
	}

	rows, err := fromDomain[domain.Workout, PgWorkout](workouts)
	if err != nil {
		return err
	}

	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Insert(workoutsTable).
			Rows(rows).
			OnConflict(goqu.DoUpdate("id", excluded("date", "lines"))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not store workouts into pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) WorkoutByID(ctx context.Context, id domain.WorkoutID) (*domain.Workout, error) {
	var workout *domain.Workout
	err := p.withRead(ctx, func(h *PgSQL) error {
		var row PgWorkout
		found, err := h.Builder.From(workoutsTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ScanStructContext(ctx, &row)
		if err != nil {
			return fmt.Errorf("could not fetch workout by id: %w", err)
		}
		if !found {
			return nil
		}

		workout, err = row.ToDomain()

		return err
	})

	return workout, err
}

func (p *PgSQL) UserWorkouts(ctx context.Context, userID domain.UserID) ([]domain.Workout, error) {
	var workouts []domain.Workout
	err := p.withRead(ctx, func(h *PgSQL) error {
		var rows []PgWorkout
		if err := h.Builder.From(workoutsTable).
			Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
			Order(goqu.I("date").Desc(), goqu.I("created_at").Desc()).
			Executor().ScanStructsContext(ctx, &rows); err != nil {
			return fmt.Errorf("could not fetch user workouts: %w", err)
		}

		var err error
		workouts, err = toDomain[domain.Workout, PgWorkout](rows)

		return err
	})

	return workouts, err
}

func (p *PgSQL) DeleteWorkout(ctx context.Context, id domain.WorkoutID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		res, err := h.Builder.Delete(workoutsTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("could not delete workout from pg: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not read affected rows: %w", err)
		}
		if affected == 0 {
			return serrors.With(serrors.ErrNotFound, "workout %s not found", id)
		}

		return nil
	})
}

func (p *PgSQL) DeleteWorkouts(ctx context.Context, ids ...domain.WorkoutID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, uuid.UUID(id))
	}

	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Delete(workoutsTable).
			Where(goqu.I("id").In(raw)).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not delete workouts from pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) DeleteUserWorkouts(ctx context.Context, userID domain.UserID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Delete(workoutsTable).
			Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not delete user workouts from pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) StoreTemplates(ctx context.Context, templates ...domain.WorkoutTemplate) error {
	if len(templates) == 0 {
		return nil
	}

	rows, err := fromDomain[domain.WorkoutTemplate, PgTemplate](templates)
	if err != nil {
		return err
	}

	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Insert(templatesTable).
			Rows(rows).
			OnConflict(goqu.DoUpdate("id", excluded("name", "lines", "deleted_at"))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not store templates into pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) TemplateByID(ctx context.Context, id domain.TemplateID) (*domain.WorkoutTemplate, error) {
	var template *domain.WorkoutTemplate
	err := p.withRead(ctx, func(h *PgSQL) error {
		var row PgTemplate
		found, err := h.Builder.From(templatesTable).
			Where(
				goqu.I("id").Eq(uuid.UUID(id)),
				goqu.I("deleted_at").IsNull(),
			).
			Executor().ScanStructContext(ctx, &row)
		if err != nil {
			return fmt.Errorf("could not fetch template by id: %w", err)
		}
		if !found {
			return nil
		}

		template, err = row.ToDomain()

		return err
	})

	return template, err
}

func (p *PgSQL) TemplateByIDAnyState(ctx context.Context, id domain.TemplateID) (*domain.WorkoutTemplate, error) {
	var template *domain.WorkoutTemplate
	err := p.withRead(ctx, func(h *PgSQL) error {
		var row PgTemplate
		found, err := h.Builder.From(templatesTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ScanStructContext(ctx, &row)
		if err != nil {
			return fmt.Errorf("could not fetch template by id: %w", err)
		}
		if !found {
			return nil
		}

		template, err = row.ToDomain()

		return err
	})

	return template, err
}

func (p *PgSQL) UserTemplates(ctx context.Context, userID domain.UserID) ([]domain.WorkoutTemplate, error) {
	var templates []domain.WorkoutTemplate
	err := p.withRead(ctx, func(h *PgSQL) error {
		var rows []PgTemplate
		if err := h.Builder.From(templatesTable).
			Where(
				goqu.I("user_id").Eq(uuid.UUID(userID)),
				goqu.I("deleted_at").IsNull(),
			).
			Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
			Executor().ScanStructsContext(ctx, &rows); err != nil {
			return fmt.Errorf("could not fetch user templates: %w", err)
		}

		var err error
		templates, err = toDomain[domain.WorkoutTemplate, PgTemplate](rows)

		return err
	})

	return templates, err
}

func (p *PgSQL) DeleteTemplate(ctx context.Context, id domain.TemplateID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		res, err := h.Builder.Delete(templatesTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("could not delete template from pg: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not read affected rows: %w", err)
		}
		if affected == 0 {
			return serrors.With(serrors.ErrNotFound, "template %s not found", id)
		}

		return nil
	})
}

func (p *PgSQL) PurgeTemplate(ctx context.Context, id domain.TemplateID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		// only soft-deleted rows are purgeable; a live row stays untouched
		if _, err := h.Builder.Delete(templatesTable).
			Where(
				goqu.I("id").Eq(uuid.UUID(id)),
				goqu.I("deleted_at").IsNotNull(),
			).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not purge template from pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) DeleteUserTemplates(ctx context.Context, userID domain.UserID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Delete(templatesTable).
			Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not delete user templates from pg: %w", err)
		}

		return nil
	})
}
