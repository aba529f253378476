package repository

import (
	"context"

	"maspatas/internal/domain/catalog"
	"maspatas/internal/infra/db"

	"github.com/google/uuid"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) Create(ctx context.Context, tx db.DBTX, p *catalog.Product) (uuid.UUID, error) {
	const q = `
INSERT INTO products (id, name, sku, description, price_cents, stock, active)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7)
`
	_, err := tx.Exec(ctx, q, p.ID, p.Name, p.SKU, p.Description, p.Price.Cents(), p.Stock, p.Active)
	if err != nil {
		return uuid.Nil, classifyPgError("failed to insert product", err)
	}
	return p.ID, nil
}
