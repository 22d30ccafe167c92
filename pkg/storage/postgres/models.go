package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
	"tracker/pkg/domain"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// dateOnly converts a calendar date to the midnight UTC instant stored in a
// DATE column.
func dateOnly(d domain.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

type PgUser struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

func (p *PgUser) ToDomain() (*domain.User, error) {
	return &domain.User{
		ID:        domain.UserID(p.ID),
		Email:     p.Email,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}, nil
}

func (p *PgUser) FromDomain(u domain.User) error {
	*p = PgUser{
		ID:        uuid.UUID(u.ID),
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}

	return nil
}

type PgDay struct {
	ID     uuid.UUID `db:"id"`
	UserID uuid.UUID `db:"user_id"`
	Date   time.Time `db:"date"`

	MealIDs     json.RawMessage `db:"meal_ids"`
	FakeMealIDs json.RawMessage `db:"fake_meal_ids"`

	CreatedAt time.Time `db:"created_at"`
}

func (p *PgDay) ToDomain() (*domain.Day, error) {
	var mealIDs []domain.MealID
	if err := json.Unmarshal(p.MealIDs, &mealIDs); err != nil {
		return nil, fmt.Errorf("could not unmarshal day meal ids: %w", err)
	}

	var fakeMealIDs []domain.FakeMealID
	if err := json.Unmarshal(p.FakeMealIDs, &fakeMealIDs); err != nil {
		return nil, fmt.Errorf("could not unmarshal day fake meal ids: %w", err)
	}

	return &domain.Day{
		ID:          domain.DayID(p.ID),
		UserID:      domain.UserID(p.UserID),
		Date:        domain.DateOf(p.Date.UTC()),
		MealIDs:     mealIDs,
		FakeMealIDs: fakeMealIDs,
		CreatedAt:   p.CreatedAt,
	}, nil
}

func (p *PgDay) FromDomain(d domain.Day) error {
	mealIDs, err := json.Marshal(d.MealIDs)
	if err != nil {
		return fmt.Errorf("could not marshal day meal ids: %w", err)
	}

	fakeMealIDs, err := json.Marshal(d.FakeMealIDs)
	if err != nil {
		return fmt.Errorf("could not marshal day fake meal ids: %w", err)
	}

	*p = PgDay{
		ID:          uuid.UUID(d.ID),
		UserID:      uuid.UUID(d.UserID),
		Date:        dateOnly(d.Date),
		MealIDs:     mealIDs,
		FakeMealIDs: fakeMealIDs,
		CreatedAt:   d.CreatedAt,
	}

	return nil
}

type PgMeal struct {
	ID       uuid.UUID `db:"id"`
	UserID   uuid.UUID `db:"user_id"`
	DayID    uuid.UUID `db:"day_id"`
	RecipeID uuid.UUID `db:"recipe_id"`

	Name  string          `db:"name"`
	Lines json.RawMessage `db:"lines"`

	CreatedAt time.Time `db:"created_at"`
}

func (p *PgMeal) ToDomain() (*domain.Meal, error) {
	var lines []domain.IngredientLine
	if err := json.Unmarshal(p.Lines, &lines); err != nil {
		return nil, fmt.Errorf("could not unmarshal meal lines: %w", err)
	}

	return &domain.Meal{
		ID:        domain.MealID(p.ID),
		UserID:    domain.UserID(p.UserID),
		DayID:     domain.DayID(p.DayID),
		RecipeID:  domain.RecipeID(p.RecipeID),
		Name:      p.Name,
		Lines:     lines,
		CreatedAt: p.CreatedAt,
	}, nil
}

func (p *PgMeal) FromDomain(m domain.Meal) error {
	lines, err := json.Marshal(m.Lines)
	if err != nil {
		return fmt.Errorf("could not marshal meal lines: %w", err)
	}

	*p = PgMeal{
		ID:        uuid.UUID(m.ID),
		UserID:    uuid.UUID(m.UserID),
		DayID:     uuid.UUID(m.DayID),
		RecipeID:  uuid.UUID(m.RecipeID),
		Name:      m.Name,
		Lines:     lines,
		CreatedAt: m.CreatedAt,
	}

	return nil
}

type PgFakeMeal struct {
	ID     uuid.UUID `db:"id"`
	UserID uuid.UUID `db:"user_id"`
	DayID  uuid.UUID `db:"day_id"`

	Name     string  `db:"name"`
	Calories float64 `db:"calories"`
	Protein  float64 `db:"protein"`

	CreatedAt time.Time `db:"created_at"`
}

func (p *PgFakeMeal) ToDomain() (*domain.FakeMeal, error) {
	return &domain.FakeMeal{
		ID:        domain.FakeMealID(p.ID),
		UserID:    domain.UserID(p.UserID),
		DayID:     domain.DayID(p.DayID),
		Name:      p.Name,
		Calories:  p.Calories,
		Protein:   p.Protein,
		CreatedAt: p.CreatedAt,
	}, nil
}

func (p *PgFakeMeal) FromDomain(f domain.FakeMeal) error {
	*p = PgFakeMeal{
		ID:        uuid.UUID(f.ID),
		UserID:    uuid.UUID(f.UserID),
		DayID:     uuid.UUID(f.DayID),
		Name:      f.Name,
		Calories:  f.Calories,
		Protein:   f.Protein,
		CreatedAt: f.CreatedAt,
	}

	return nil
}

type PgRecipe struct {
	ID     uuid.UUID `db:"id"`
	UserID uuid.UUID `db:"user_id"`

	Name  string          `db:"name"`
	Lines json.RawMessage `db:"lines"`

	CreatedAt time.Time `db:"created_at"`
}

func (p *PgRecipe) ToDomain() (*domain.Recipe, error) {
	var lines []domain.IngredientLine
	if err := json.Unmarshal(p.Lines, &lines); err != nil {
		return nil, fmt.Errorf("could not unmarshal recipe lines: %w", err)
	}

	return &domain.Recipe{
		ID:        domain.RecipeID(p.ID),
		UserID:    domain.UserID(p.UserID),
		Name:      p.Name,
		Lines:     lines,
		CreatedAt: p.CreatedAt,
	}, nil
}

func (p *PgRecipe) FromDomain(r domain.Recipe) error {
	lines, err := json.Marshal(r.Lines)
	if err != nil {
		return fmt.Errorf("could not marshal recipe lines: %w", err)
	}

	*p = PgRecipe{
		ID:        uuid.UUID(r.ID),
		UserID:    uuid.UUID(r.UserID),
		Name:      r.Name,
		Lines:     lines,
		CreatedAt: r.CreatedAt,
	}

	return nil
}

type PgIngredient struct {
	ID     uuid.UUID `db:"id"`
	UserID uuid.UUID `db:"user_id"`

	Name            string  `db:"name"`
	CaloriesPer100g float64 `db:"calories_per_100g"`
	ProteinPer100g  float64 `db:"protein_per_100g"`

	CreatedAt time.Time `db:"created_at"`
}

func (p *PgIngredient) ToDomain() (*domain.Ingredient, error) {
	return &domain.Ingredient{
		ID:              domain.IngredientID(p.ID),
		UserID:          domain.UserID(p.UserID),
		Name:            p.Name,
		CaloriesPer100g: p.CaloriesPer100g,
		ProteinPer100g:  p.ProteinPer100g,
		CreatedAt:       p.CreatedAt,
	}, nil
}

func (p *PgIngredient) FromDomain(i domain.Ingredient) error {
	*p = PgIngredient{
		ID:              uuid.UUID(i.ID),
		UserID:          uuid.UUID(i.UserID),
		Name:            i.Name,
		CaloriesPer100g: i.CaloriesPer100g,
		ProteinPer100g:  i.ProteinPer100g,
		CreatedAt:       i.CreatedAt,
	}

	return nil
}

type PgExternalRef struct {
	ID           uuid.UUID `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	Provider     string    `db:"provider"`
	ExternalID   string    `db:"external_id"`
	IngredientID uuid.UUID `db:"ingredient_id"`
	CreatedAt    time.Time `db:"created_at"`
}

func (p *PgExternalRef) ToDomain() (*domain.ExternalIngredientRef, error) {
	return &domain.ExternalIngredientRef{
		ID:           domain.ExternalRefID(p.ID),
		UserID:       domain.UserID(p.UserID),
		Provider:     p.Provider,
		ExternalID:   p.ExternalID,
		IngredientID: domain.IngredientID(p.IngredientID),
		CreatedAt:    p.CreatedAt,
	}, nil
}

func (p *PgExternalRef) FromDomain(r domain.ExternalIngredientRef) error {
	*p = PgExternalRef{
		ID:           uuid.UUID(r.ID),
		UserID:       uuid.UUID(r.UserID),
		Provider:     r.Provider,
		ExternalID:   r.ExternalID,
		IngredientID: uuid.UUID(r.IngredientID),
		CreatedAt:    r.CreatedAt,
	}

	return nil
}

type PgWorkout struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	TemplateID uuid.UUID `db:"template_id"`

	Date  time.Time       `db:"date"`
	Lines json.RawMessage `db:"lines"`

	CreatedAt time.Time `db:"created_at"`
}

func (p *PgWorkout) ToDomain() (*domain.Workout, error) {
	var lines []domain.WorkoutLine
	if err := json.Unmarshal(p.Lines, &lines); err != nil {
		return nil, fmt.Errorf("could not unmarshal workout lines: %w", err)
	}

	return &domain.Workout{
		ID:         domain.WorkoutID(p.ID),
		UserID:     domain.UserID(p.UserID),
		TemplateID: domain.TemplateID(p.TemplateID),
		Date:       domain.DateOf(p.Date.UTC()),
		Lines:      lines,
		CreatedAt:  p.CreatedAt,
	}, nil
}

func (p *PgWorkout) FromDomain(w domain.Workout) error {
	lines, err := json.Marshal(w.Lines)
	if err != nil {
		return fmt.Errorf("could not marshal workout lines: %w", err)
	}

	*p = PgWorkout{
		ID:         uuid.UUID(w.ID),
		UserID:     uuid.UUID(w.UserID),
		TemplateID: uuid.UUID(w.TemplateID),
		Date:       dateOnly(w.Date),
		Lines:      lines,
		CreatedAt:  w.CreatedAt,
	}

	return nil
}

type PgTemplate struct {
	ID     uuid.UUID `db:"id"`
	UserID uuid.UUID `db:"user_id"`

	Name  string          `db:"name"`
	Lines json.RawMessage `db:"lines"`

	DeletedAt sql.NullTime `db:"deleted_at"`
	CreatedAt time.Time    `db:"created_at"`
}

func (p *PgTemplate) ToDomain() (*domain.WorkoutTemplate, error) {
	var lines []domain.TemplateLine
	if err := json.Unmarshal(p.Lines, &lines); err != nil {
		return nil, fmt.Errorf("could not unmarshal template lines: %w", err)
	}

	return &domain.WorkoutTemplate{
		ID:        domain.TemplateID(p.ID),
		UserID:    domain.UserID(p.UserID),
		Name:      p.Name,
		Lines:     lines,
		Deleted:   p.DeletedAt.Valid,
		DeletedAt: p.DeletedAt.Time,
		CreatedAt: p.CreatedAt,
	}, nil
}

func (p *PgTemplate) FromDomain(t domain.WorkoutTemplate) error {
	lines, err := json.Marshal(t.Lines)
	if err != nil {
		return fmt.Errorf("could not marshal template lines: %w", err)
	}

	*p = PgTemplate{
		ID:     uuid.UUID(t.ID),
		UserID: uuid.UUID(t.UserID),
		Name:   t.Name,
		Lines:  lines,
		DeletedAt: sql.NullTime{
			Time:  t.DeletedAt,
			Valid: t.Deleted,
		},
		CreatedAt: t.CreatedAt,
	}

	return nil
}

// orderByIDs rearranges fetched rows into the order the ids were requested
// in. Ids without a row are skipped.
func orderByIDs[D any](items []D, ids []uuid.UUID, id func(D) uuid.UUID) []D {
	byID := make(map[uuid.UUID]D, len(items))
	for _, item := range items {
		byID[id(item)] = item
	}

	out := make([]D, 0, len(ids))
	for _, want := range ids {
		if item, ok := byID[want]; ok {
			out = append(out, item)
		}
	}

	return out
}

// excluded builds the DO UPDATE set list for an upsert, assigning every
// given column from the EXCLUDED pseudo row.
func excluded(cols ...string) goqu.Record {
	rec := goqu.Record{}
	for _, c := range cols {
		rec[c] = goqu.L("EXCLUDED." + c)
	}

	return rec
}

// converter is satisfied by every Pg row type; fromDomain builds the row
// slice for bulk inserts, toDomain maps result rows back.
type converter[D any] interface {
	ToDomain() (*D, error)
	FromDomain(d D) error
}

func fromDomain[D any, P any, PP interface {
	*P
	converter[D]
}](items []D) ([]P, error) {
	out := make([]P, len(items))
	for i := range out {
		if err := PP(&out[i]).FromDomain(items[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func toDomain[D any, P any, PP interface {
	*P
	converter[D]
}](rows []P) ([]D, error) {
	out := make([]D, 0, len(rows))
	for i := range rows {
		d, err := PP(&rows[i]).ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
