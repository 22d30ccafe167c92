package memory

import (
	"context"
	"tracker/pkg/domain"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
)

func (m *Memory) StoreUsers(ctx context.Context, users ...domain.User) error {
	if len(users) == 0 {
		return nil
	}

	return m.withWrite(ctx, "StoreUsers", func(t *tables) error {
		for _, u := range users {
			id := uuid.UUID(u.ID)
			t.users[id] = u
			t.touch(id)
		}

		return nil
	})
}

func (m *Memory) UserByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var out *domain.User
	err := m.withRead(ctx, func(t *tables) error {
		if row, ok := t.users[uuid.UUID(id)]; ok {
			out = &row
		}

		return nil
	})

	return out, err
}

func (m *Memory) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var out *domain.User
	err := m.withRead(ctx, func(t *tables) error {
		for _, row := range t.users {
			if row.Email == email {
				row := row
				out = &row

				break
			}
		}

		return nil
	})

	return out, err
}

func (m *Memory) DeleteUser(ctx context.Context, id domain.UserID) error {
	return m.withWrite(ctx, "DeleteUser", func(t *tables) error {
		if _, ok := t.users[uuid.UUID(id)]; !ok {
			return serrors.With(serrors.ErrNotFound, "user %s not found", id)
		}
		delete(t.users, uuid.UUID(id))

		return nil
	})
}
