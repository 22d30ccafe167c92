package memory

import (
	"context"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
)

func (m *Memory) StoreRecipes(ctx context.Context, recipes ...domain.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	return m.withWrite(ctx, "StoreRecipes", func(t *tables) error {
		for _, r := range recipes {
			id := uuid.UUID(r.ID)
			t.recipes[id] = cloneRecipe(r)
			t.touch(id)
		}

		return nil
	})
}

func (m *Memory) RecipeByID(ctx context.Context, id domain.RecipeID) (*domain.Recipe, error) {
	var out *domain.Recipe
	err := m.withRead(ctx, func(t *tables) error {
		if row, ok := t.recipes[uuid.UUID(id)]; ok {
			row = cloneRecipe(row)
			out = &row
		}

		return nil
	})

	return out, err
}

func (m *Memory) RecipesByIDs(ctx context.Context, ids []domain.RecipeID) ([]domain.Recipe, error) {
	var out []domain.Recipe
	err := m.withRead(ctx, func(t *tables) error {
		for _, id := range ids {
			if row, ok := t.recipes[uuid.UUID(id)]; ok {
				out = append(out, cloneRecipe(row))
			}
		}

		return nil
	})

	return out, err
}

func (m *Memory) UserRecipes(ctx context.Context, userID domain.UserID) ([]domain.Recipe, error) {
	var out []domain.Recipe
	err := m.withRead(ctx, func(t *tables) error {
		for _, row := range t.recipes {
			if row.UserID == userID {
				out = append(out, cloneRecipe(row))
			}
		}
		sortByInsertion(t, out, func(r domain.Recipe) uuid.UUID { return uuid.UUID(r.ID) })

		return nil
	})

	return out, err
}

func (m *Memory) DeleteRecipe(ctx context.Context, id domain.RecipeID) error {
	return m.withWrite(ctx, "DeleteRecipe", func(t *tables) error {
		if _, ok := t.recipes[uuid.UUID(id)]; !ok {
			return serrors.With(serrors.ErrNotFound, "recipe %s not found", id)
		}
		delete(t.recipes, uuid.UUID(id))

		return nil
	})
}

func (m *Memory) DeleteRecipes(ctx context.Context, ids ...domain.RecipeID) error {
	if len(ids) == 0 {
		return nil
	}

	return m.withWrite(ctx, "DeleteRecipes", func(t *tables) error {
		for _, id := range ids {
			delete(t.recipes, uuid.UUID(id))
		}

		return nil
	})
}

func (m *Memory) DeleteUserRecipes(ctx context.Context, userID domain.UserID) error {
	return m.withWrite(ctx, "DeleteUserRecipes", func(t *tables) error {
		for id, row := range t.recipes {
			if row.UserID == userID {
				delete(t.recipes, id)
			}
		}

		return nil
	})
}

func (m *Memory) StoreIngredients(ctx context.Context, ingredients ...domain.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}

	return m.withWrite(ctx, "StoreIngredients", func(t *tables) error {
		for _, ing := range ingredients {
			id := uuid.UUID(ing.ID)
			t.ingredients[id] = ing
			t.touch(id)
		}

		return nil
	})
}

func (m *Memory) IngredientByID(ctx context.Context, id domain.IngredientID) (*domain.Ingredient, error) {
	var out *domain.Ingredient
	err := m.withRead(ctx, func(t *tables) error {
		if row, ok := t.ingredients[uuid.UUID(id)]; ok {
			out = &row
		}

		return nil
	})

	return out, err
}

func (m *Memory) IngredientsByIDs(ctx context.Context, ids []domain.IngredientID) ([]domain.Ingredient, error) {
	var out []domain.Ingredient
	err := m.withRead(ctx, func(t *tables) error {
		for _, id := range ids {
			if row, ok := t.ingredients[uuid.UUID(id)]; ok {
				out = append(out, row)
			}
		}

		return nil
	})

	return out, err
}

func (m *Memory) UserIngredients(ctx context.Context, userID domain.UserID) ([]domain.Ingredient, error) {
	var out []domain.Ingredient
	err := m.withRead(ctx, func(t *tables) error {
		for _, row := range t.ingredients {
			if row.UserID == userID {
				out = append(out, row)
			}
		}
		sortByInsertion(t, out, func(ing domain.Ingredient) uuid.UUID { return uuid.UUID(ing.ID) })

		return nil
	})

	return out, err
}

func (m *Memory) DeleteIngredient(ctx context.Context, id domain.IngredientID) error {
	return m.withWrite(ctx, "DeleteIngredient", func(t *tables) error {
		if _, ok := t.ingredients[uuid.UUID(id)]; !ok {
			return serrors.With(serrors.ErrNotFound, "ingredient %s not found", id)
		}
		delete(t.ingredients, uuid.UUID(id))

		return nil
	})
}

func (m *Memory) DeleteIngredients(ctx context.Context, ids ...domain.IngredientID) error {
	if len(ids) == 0 {
		return nil
	}

	return m.withWrite(ctx, "DeleteIngredients", func(t *tables) error {
		for _, id := range ids {
			delete(t.ingredients, uuid.UUID(id))
		}

		return nil
	})
}

func (m *Memory) DeleteUserIngredients(ctx context.Context, userID domain.UserID) error {
	return m.withWrite(ctx, "DeleteUserIngredients", func(t *tables) error {
		for id, row := range t.ingredients {
			if row.UserID == userID {
				delete(t.ingredients, id)
			}
		}

		return nil
	})
}

func (m *Memory) StoreExternalRefs(ctx context.Context, refs ...domain.ExternalIngredientRef) error {
	if len(refs) == 0 {
		return nil
	}

	return m.withWrite(ctx, "StoreExternalRefs", func(t *tables) error {
		for _, ref := range refs {
			id := uuid.UUID(ref.ID)
			t.externalRefs[id] = ref
			t.touch(id)
		}

		return nil
	})
}

func (m *Memory) ExternalRefByKey(ctx context.Context,
	userID domain.UserID,
	provider, externalID string) (*domain.ExternalIngredientRef, error) {
	var out *domain.ExternalIngredientRef
	err := m.withRead(ctx, func(t *tables) error {
		for _, row := range t.externalRefs {
			if row.UserID == userID && row.Provider == provider && row.ExternalID == externalID {
				row := row
				out = &row

				break
			}
		}

		return nil
	})

	return out, err
}

func (m *Memory) UserExternalRefs(ctx context.Context, userID domain.UserID) ([]domain.ExternalIngredientRef, error) {
	var out []domain.ExternalIngredientRef
	err := m.withRead(ctx, func(t *tables) error {
		for _, row := range t.externalRefs {
			if row.UserID == userID {
				out = append(out, row)
			}
		}
		sortByInsertion(t, out, func(r domain.ExternalIngredientRef) uuid.UUID { return uuid.UUID(r.ID) })

		return nil
	})

	return out, err
}

func (m *Memory) DeleteExternalRef(ctx context.Context, id domain.ExternalRefID) error {
	return m.withWrite(ctx, "DeleteExternalRef", func(t *tables) error {
		if _, ok := t.externalRefs[uuid.UUID(id)]; !ok {
			return serrors.With(serrors.ErrNotFound, "external ref %s not found", id)
		}
		delete(t.externalRefs, uuid.UUID(id))

		return nil
	})
}

func (m *Memory) DeleteUserExternalRefs(ctx context.Context, userID domain.UserID) error {
	return m.withWrite(ctx, "DeleteUserExternalRefs", func(t *tables) error {
		for id, row := range t.externalRefs {
			if row.UserID == userID {
				delete(t.externalRefs, id)
			}
		}

		return nil
	})
}
