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
	recipesTable      = "recipes"
	ingredientsTable  = "ingredients"
	externalRefsTable = "external_ingredient_refs"
)

func (p *PgSQL) StoreRecipes(ctx context.Context, recipes ...domain.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	rows, err := fromDomain[domain.Recipe, PgRecipe](recipes)
	if err != nil {
		return err
	}

	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Insert(recipesTable).
			Rows(rows).
			OnConflict(goqu.DoUpdate("id", excluded("name", "lines"))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not store recipes into pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) RecipeByID(ctx context.Context, id domain.RecipeID) (*domain.Recipe, error) {
	var recipe *domain.Recipe
	err := p.withRead(ctx, func(h *PgSQL) error {
		var row PgRecipe
		found, err := h.Builder.From(recipesTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ScanStructContext(ctx, &row)
		if err != nil {
			return fmt.Errorf("could not fetch recipe by id: %w", err)
		}
		if !found {
			return nil
		}

		recipe, err = row.ToDomain()

		return err
	})

	return recipe, err
}

func (p *PgSQL) RecipesByIDs(ctx context.Context, ids []domain.RecipeID) ([]domain.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, uuid.UUID(id))
	}

	var recipes []domain.Recipe
	err := p.withRead(ctx, func(h *PgSQL) error {
		var rows []PgRecipe
		if err := h.Builder.From(recipesTable).
			Where(goqu.I("id").In(raw)).
			Executor().ScanStructsContext(ctx, &rows); err != nil {
			return fmt.Errorf("could not fetch recipes by ids: %w", err)
		}

		fetched, err := toDomain[domain.Recipe, PgRecipe](rows)
		if err != nil {
			return err
		}

		recipes = orderByIDs(fetched, raw, func(r domain.Recipe) uuid.UUID { return uuid.UUID(r.ID) })

		return nil
	})

	return recipes, err
}

func (p *PgSQL) UserRecipes(ctx context.Context, userID domain.UserID) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	err := p.withRead(ctx, func(h *PgSQL) error {
		var rows []PgRecipe
		if err := h.Builder.From(recipesTable).
			Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
			Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
			Executor().ScanStructsContext(ctx, &rows); err != nil {
			return fmt.Errorf("could not fetch user recipes: %w", err)
		}

		var err error
		recipes, err = toDomain[domain.Recipe, PgRecipe](rows)

		return err
	})

	return recipes, err
}

func (p *PgSQL) DeleteRecipe(ctx context.Context, id domain.RecipeID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		res, err := h.Builder.Delete(recipesTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("could not delete recipe from pg: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not read affected rows: %w", err)
		}
		if affected == 0 {
			return serrors.With(serrors.ErrNotFound, "recipe %s not found", id)
		}

		return nil
	})
}

func (p *PgSQL) DeleteRecipes(ctx context.Context, ids ...domain.RecipeID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, uuid.UUID(id))
	}

	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Delete(recipesTable).
			Where(goqu.I("id").In(raw)).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not delete recipes from pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) DeleteUserRecipes(ctx context.Context, userID domain.UserID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Delete(recipesTable).
			Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not delete user recipes from pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) StoreIngredients(ctx context.Context, ingredients ...domain.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}

	rows, err := fromDomain[domain.Ingredient, PgIngredient](ingredients)
	if err != nil {
		return err
	}

	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Insert(ingredientsTable).
			Rows(rows).
			OnConflict(goqu.DoUpdate("id", excluded("name", "calories_per_100g", "protein_per_100g"))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not store ingredients into pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) IngredientByID(ctx context.Context, id domain.IngredientID) (*domain.Ingredient, error) {
	var ingredient *domain.Ingredient
	err := p.withRead(ctx, func(h *PgSQL) error {
		var row PgIngredient
		found, err := h.Builder.From(ingredientsTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ScanStructContext(ctx, &row)
		if err != nil {
			return fmt.Errorf("could not fetch ingredient by id: %w", err)
		}
		if !found {
			return nil
		}

		ingredient, err = row.ToDomain()

		return err
	})

	return ingredient, err
}

func (p *PgSQL) IngredientsByIDs(ctx context.Context, ids []domain.IngredientID) ([]domain.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, uuid.UUID(id))
	}

	var ingredients []domain.Ingredient
	err := p.withRead(ctx, func(h *PgSQL) error {
		var rows []PgIngredient
		if err := h.Builder.From(ingredientsTable).
			Where(goqu.I("id").In(raw)).
			Executor().ScanStructsContext(ctx, &rows); err != nil {
			return fmt.Errorf("could not fetch ingredients by ids: %w", err)
		}

		fetched, err := toDomain[domain.Ingredient, PgIngredient](rows)
		if err != nil {
			return err
		}

		ingredients = orderByIDs(fetched, raw, func(i domain.Ingredient) uuid.UUID { return uuid.UUID(i.ID) })

		return nil
	})

	return ingredients, err
}

func (p *PgSQL) UserIngredients(ctx context.Context, userID domain.UserID) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	err := p.withRead(ctx, func(h *PgSQL) error {
		var rows []PgIngredient
		if err := h.Builder.From(ingredientsTable).
			Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
			Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
			Executor().ScanStructsContext(ctx, &rows); err != nil {
			return fmt.Errorf("could not fetch user ingredients: %w", err)
		}

		var err error
		ingredients, err = toDomain[domain.Ingredient, PgIngredient](rows)

		return err
	})

	return ingredients, err
}

func (p *PgSQL) DeleteIngredient(ctx context.Context, id domain.IngredientID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		res, err := h.Builder.Delete(ingredientsTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("could not delete ingredient from pg: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not read affected rows: %w", err)
		}
		if affected == 0 {
			return serrors.With(serrors.ErrNotFound, "ingredient %s not found", id)
		}

		return nil
	})
}

func (p *PgSQL) DeleteIngredients(ctx context.Context, ids ...domain.IngredientID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, uuid.UUID(id))
	}

	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Delete(ingredientsTable).
			Where(goqu.I("id").In(raw)).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not delete ingredients from pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) DeleteUserIngredients(ctx context.Context, userID domain.UserID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Delete(ingredientsTable).
			Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not delete user ingredients from pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) StoreExternalRefs(ctx context.Context, refs ...domain.ExternalIngredientRef) error {
	if len(refs) == 0 {
		return nil
	}

	rows, err := fromDomain[domain.ExternalIngredientRef, PgExternalRef](refs)
	if err != nil {
		return err
	}

	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Insert(externalRefsTable).
			Rows(rows).
			OnConflict(goqu.DoUpdate("id", excluded("ingredient_id"))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not store external refs into pg: %w", err)
		}

		return nil
	})
}

func (p *PgSQL) ExternalRefByKey(ctx context.Context,
	userID domain.UserID,
	provider, externalID string) (*domain.ExternalIngredientRef, error) {
	var ref *domain.ExternalIngredientRef
	err := p.withRead(ctx, func(h *PgSQL) error {
		var row PgExternalRef
		found, err := h.Builder.From(externalRefsTable).
			Where(
				goqu.I("user_id").Eq(uuid.UUID(userID)),
				goqu.I("provider").Eq(provider),
				goqu.I("external_id").Eq(externalID),
			).
			Executor().ScanStructContext(ctx, &row)
		if err != nil {
			return fmt.Errorf("could not fetch external ref by key: %w", err)
		}
		if !found {
			return nil
		}

		ref, err = row.ToDomain()

		return err
	})

	return ref, err
}

func (p *PgSQL) UserExternalRefs(ctx context.Context, userID domain.UserID) ([]domain.ExternalIngredientRef, error) {
	var refs []domain.ExternalIngredientRef
	err := p.withRead(ctx, func(h *PgSQL) error {
		var rows []PgExternalRef
		if err := h.Builder.From(externalRefsTable).
			Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
			Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
			Executor().ScanStructsContext(ctx, &rows); err != nil {
			return fmt.Errorf("could not fetch user external refs: %w", err)
		}

		var err error
		refs, err = toDomain[domain.ExternalIngredientRef, PgExternalRef](rows)

		return err
	})

	return refs, err
}

func (p *PgSQL) DeleteExternalRef(ctx context.Context, id domain.ExternalRefID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		res, err := h.Builder.Delete(externalRefsTable).
			Where(goqu.I("id").Eq(uuid.UUID(id))).
			Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("could not delete external ref from pg: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not read affected rows: %w", err)
		}
		if affected == 0 {
			return serrors.With(serrors.ErrNotFound, "external ref %s not found", id)
		}

		return nil
	})
}

func (p *PgSQL) DeleteUserExternalRefs(ctx context.Context, userID domain.UserID) error {
	return p.withWrite(ctx, func(h *PgSQL) error {
		if _, err := h.Builder.Delete(externalRefsTable).
			Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not delete user external refs from pg: %w", err)
		}

		return nil
	})
}
