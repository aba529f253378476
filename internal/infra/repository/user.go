package repository

import (
	"context"

	"maspatas/internal/domain/user"
	"maspatas/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error) {
	const q = `
INSERT INTO users (id, username, email, password_hash, role, is_active)
VALUES ($1, $2, $3, $4, $5, $6)
`
	var email *string
	if u.Email() != nil {
		v := u.Email().Value()
		email = &v
	}

	_, err := tx.Exec(ctx, q, u.ID(), u.Username().Value(), email, u.PasswordHash(), u.Role().String(), u.IsActive())
	if err != nil {
		return uuid.Nil, classifyPgError("failed to insert user", err)
	}
	return u.ID(), nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	const q = `UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`
	_, err := tx.Exec(ctx, q, userID)
	if err != nil {
		return classifyPgError("failed to update last login", err)
	}
	return nil
}
