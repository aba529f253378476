package readstore

import (
	"context"

	"maspatas/internal/infra"
	"maspatas/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InventoryReadStore struct {
	pool *pgxpool.Pool
}

func NewInventoryReadStore(pool *pgxpool.Pool) *InventoryReadStore {
	return &InventoryReadStore{pool: pool}
}

func (s *InventoryReadStore) FindStock(ctx context.Context) ([]*queries.StockView, error) {
	const q = `
SELECT id, name, COALESCE(sku, ''), stock, updated_at
FROM products
WHERE active = true
ORDER BY name, id
`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query stock", err)
	}
	defer rows.Close()

	views := []*queries.StockView{}
	for rows.Next() {
		var v queries.StockView
		err := rows.Scan(&v.ProductID, &v.ProductName, &v.SKU, &v.Stock, &v.UpdatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan stock row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate stock rows", err)
	}
	return views, nil
}

func (s *InventoryReadStore) FindMovements(ctx context.Context, productID *uuid.UUID) ([]*queries.MovementView, error) {
	q := `
SELECT m.id, m.product_id, m.movement_type, m.quantity, m.balance_after, COALESCE(m.reason, ''), u.username, m.sale_id, m.created_at
FROM inventory_movements m
LEFT JOIN users u ON u.id = m.user_id
`
	args := []any{}
	if productID != nil {
		q += `WHERE m.product_id = $1
`
		args = append(args, *productID)
	}
	q += `ORDER BY m.created_at DESC, m.id DESC`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query movements", err)
	}
	defer rows.Close()

	views := []*queries.MovementView{}
	for rows.Next() {
		var v queries.MovementView
		err := rows.Scan(&v.ID, &v.ProductID, &v.Type, &v.Quantity, &v.BalanceAfter, &v.Reason, &v.UserName, &v.SaleID, &v.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan movement", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate movements", err)
	}
	return views, nil
}
