package tracker

import (
	"context"
	"fmt"
	"tracker/pkg/domain"
	"tracker/pkg/logger"
	"tracker/pkg/serrors"

	"go.uber.org/zap"
)

// CreateUser registers a new account after checking the email is free.
func (t *tracker) CreateUser(ctx context.Context, email, name string) (*domain.User, error) {
	user, err := domain.NewUser(email, name)
	if err != nil {
		return nil, err
	}

	err = t.storage.WithTx(ctx, func(ctx context.Context) error {
		existing, err := t.storage.UserByEmail(ctx, user.Email)
		if err != nil {
			return fmt.Errorf("could not check email: %w", err)
		}
		if existing != nil {
			return serrors.With(serrors.ErrAlreadyExists, "email %s is already registered", user.Email)
		}

		return t.storage.StoreUsers(ctx, *user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// User fetches an account by id.
func (t *tracker) User(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := t.storage.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrNotFound, "user %s not found", id)
	}

	return user, nil
}

// DeleteUser removes the target account together with everything it owns.
// The cascade runs in one session, so a failure at any step leaves every
// aggregate in place.
func (t *tracker) DeleteUser(ctx context.Context, actorID, targetID domain.UserID) error {
	if actorID != targetID {
		return serrors.With(serrors.ErrPermission, "user %s may not delete user %s", actorID, targetID)
	}

	user, err := t.storage.UserByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return serrors.With(serrors.ErrNotFound, "user %s not found", targetID)
	}

	err = t.storage.WithTx(ctx, func(ctx context.Context) error {
		if err := t.storage.DeleteUserFakeMeals(ctx, targetID); err != nil {
			return fmt.Errorf("could not delete fake meals: %w", err)
		}
		if err := t.storage.DeleteUserMeals(ctx, targetID); err != nil {
			return fmt.Errorf("could not delete meals: %w", err)
		}
		if err := t.storage.DeleteUserRecipes(ctx, targetID); err != nil {
			return fmt.Errorf("could not delete recipes: %w", err)
		}
		if err := t.storage.DeleteUserExternalRefs(ctx, targetID); err != nil {
			return fmt.Errorf("could not delete external refs: %w", err)
		}
		if err := t.storage.DeleteUserIngredients(ctx, targetID); err != nil {
			return fmt.Errorf("could not delete ingredients: %w", err)
		}
		if err := t.storage.DeleteUserWorkouts(ctx, targetID); err != nil {
			return fmt.Errorf("could not delete workouts: %w", err)
		}
		if err := t.storage.DeleteUserTemplates(ctx, targetID); err != nil {
			return fmt.Errorf("could not delete templates: %w", err)
		}
		if err := t.storage.DeleteUserDays(ctx, targetID); err != nil {
			return fmt.Errorf("could not delete days: %w", err)
		}

		return t.storage.DeleteUser(ctx, targetID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "deleted user and owned aggregates", zap.String("userId", targetID.String()))

	return nil
}
