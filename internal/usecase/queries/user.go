package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type UserView struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     *string    `json:"email,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    *string   `json:"email,omitempty"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type UserQueries interface {
	List(ctx context.Context) ([]*UserView, error)
}

type UserReadStore interface {
	FindAll(ctx context.Context) ([]*UserView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	// FindByLogin matches username or email and returns the stored hash for
	// credential verification.
	FindByLogin(ctx context.Context, usernameOrEmail string) (*AuthorizedUserView, string, error)
}

type userQueriesImpl struct {
	store UserReadStore
}

func NewUserQueries(store UserReadStore) UserQueries {
	return &userQueriesImpl{store: store}
}

func (q *userQueriesImpl) List(ctx context.Context) ([]*UserView, error) {
	return q.store.FindAll(ctx)
}
