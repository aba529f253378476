package repository

import (
	"context"
	"time"

	"maspatas/internal/infra"
	"maspatas/internal/infra/db"

	"github.com/google/uuid"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

// TryInsert claims the key if unused. ON CONFLICT DO NOTHING keeps the
// original row so a replay can read the first request's outcome; zero
// affected rows means the key was already claimed.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	const q = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, user_id) DO NOTHING
`
	tag, err := tx.Exec(ctx, q, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, classifyPgError("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultSaleID uuid.UUID) error {
	const q = `
UPDATE idempotency_keys
SET status = 'completed', result_sale_id = $3, updated_at = now()
WHERE key = $1 AND user_id = $2
`
	tag, err := tx.Exec(ctx, q, key, userID, resultSaleID)
	if err != nil {
		return classifyPgError("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, tx db.DBTX, now time.Time) (int64, error) {
	const q = `DELETE FROM idempotency_keys WHERE expires_at < $1`
	tag, err := tx.Exec(ctx, q, now)
	if err != nil {
		return 0, classifyPgError("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
