package readstore

import (
	"context"

	"maspatas/internal/infra"
	"maspatas/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserReadStore struct {
	pool *pgxpool.Pool
}

func NewUserReadStore(pool *pgxpool.Pool) *UserReadStore {
	return &UserReadStore{pool: pool}
}

func (s *UserReadStore) FindAll(ctx context.Context) ([]*queries.UserView, error) {
	const q = `
SELECT id, username, email, role, is_active, last_login, created_at
FROM users
ORDER BY created_at DESC, id
`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query users", err)
	}
	defer rows.Close()

	views := []*queries.UserView{}
	for rows.Next() {
		var v queries.UserView
		err := rows.Scan(&v.ID, &v.Username, &v.Email, &v.Role, &v.IsActive, &v.LastLogin, &v.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan user", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate users", err)
	}
	return views, nil
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	const q = `
SELECT id, username, email, role, is_active
FROM users
WHERE id = $1
`
	var v queries.AuthorizedUserView
	err := s.pool.QueryRow(ctx, q, id).Scan(&v.ID, &v.Username, &v.Email, &v.Role, &v.IsActive)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return &v, nil
}

// FindByLogin resolves a login identifier against both username and email so
// either works on the login form.
func (s *UserReadStore) FindByLogin(ctx context.Context, usernameOrEmail string) (*queries.AuthorizedUserView, string, error) {
	const q = `
SELECT id, username, email, role, is_active, password_hash
FROM users
WHERE username = $1 OR email = $1
`
	var (
		v    queries.AuthorizedUserView
		hash string
	)
	err := s.pool.QueryRow(ctx, q, usernameOrEmail).Scan(&v.ID, &v.Username, &v.Email, &v.Role, &v.IsActive, &hash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by login", err)
	}
	return &v, hash, nil
}
