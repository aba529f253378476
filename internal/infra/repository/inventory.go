package repository

import (
	"context"
	"errors"

	"maspatas/internal/infra"
	"maspatas/internal/infra/db"
	"maspatas/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type InventoryRepository struct{}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

// AdjustStock applies the delta atomically; the stock >= 0 guard in the
// WHERE clause rejects oversells without a separate read.
func (r *InventoryRepository) AdjustStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, delta int64) (int64, error) {
	const q = `
UPDATE products
SET stock = stock + $2, updated_at = now()
WHERE id = $1 AND stock + $2 >= 0
RETURNING stock
`
	var balance int64
	err := tx.QueryRow(ctx, q, productID, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, infra.WrapRepoErr("insufficient stock or product not found", err, infra.KindConflict)
		}
		return 0, classifyPgError("failed to adjust stock", err)
	}
	return balance, nil
}

func (r *InventoryRepository) RecordMovement(ctx context.Context, tx db.DBTX, m shared.MovementRecord) (uuid.UUID, error) {
	const q = `
INSERT INTO inventory_movements (id, product_id, movement_type, quantity, balance_after, reason, user_id, sale_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	id := uuid.New()
	_, err := tx.Exec(ctx, q, id, m.ProductID, m.Type, m.Quantity, m.BalanceAfter, m.Reason, m.UserID, m.SaleID)
	if err != nil {
		return uuid.Nil, classifyPgError("failed to record inventory movement", err)
	}
	return id, nil
}
