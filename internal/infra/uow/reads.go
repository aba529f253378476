package uow

import (
	"context"
	"errors"

	"maspatas/internal/infra"
	"maspatas/internal/infra/db"
	"maspatas/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// commandReads serves the write side's validation reads. It binds to whatever
// DBTX the caller holds so reads inside a transaction see its own writes.
type commandReads struct {
	dbtx db.DBTX
}

func (r *commandReads) ProductByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	const q = `
SELECT id, name, price_cents, stock, active
FROM products
WHERE id = $1
`
	var snap shared.ProductSnapshot
	err := r.dbtx.QueryRow(ctx, q, id).Scan(&snap.ID, &snap.Name, &snap.PriceCents, &snap.Stock, &snap.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read product", err)
	}
	return &snap, nil
}

func (r *commandReads) CustomerByID(ctx context.Context, id uuid.UUID) (*shared.CustomerSnapshot, error) {
	const q = `
SELECT id, name, COALESCE(email, '')
FROM customers
WHERE id = $1
`
	var snap shared.CustomerSnapshot
	err := r.dbtx.QueryRow(ctx, q, id).Scan(&snap.ID, &snap.Name, &snap.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read customer", err)
	}
	return &snap, nil
}

func (r *commandReads) SaleByID(ctx context.Context, id uuid.UUID) (*shared.SaleSnapshot, error) {
	const q = `
SELECT id, customer_id, status, total_cents
FROM sales
WHERE id = $1
`
	var snap shared.SaleSnapshot
	err := r.dbtx.QueryRow(ctx, q, id).Scan(&snap.ID, &snap.CustomerID, &snap.Status, &snap.TotalCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("sale not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read sale", err)
	}

	const itemsQ = `
SELECT product_id, quantity, unit_price_cents
FROM sale_items
WHERE sale_id = $1
ORDER BY position
`
	rows, err := r.dbtx.Query(ctx, itemsQ, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read sale items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item shared.SaleItemSnapshot
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan sale item", err)
		}
		snap.Items = append(snap.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate sale items", err)
	}
	return &snap, nil
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	const q = `
SELECT key, user_id, endpoint, status, request_hash, result_sale_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2
`
	var rec shared.IdempotencyRecord
	err := r.dbtx.QueryRow(ctx, q, key, userID).Scan(
		&rec.Key, &rec.UserID, &rec.Endpoint, &rec.Status, &rec.RequestHash, &rec.ResultSaleID, &rec.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read idempotency key", err)
	}
	return &rec, nil
}
