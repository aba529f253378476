package readstore

import (
	"context"

	"maspatas/internal/infra"
	"maspatas/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductReadStore struct {
	pool *pgxpool.Pool
}

func NewProductReadStore(pool *pgxpool.Pool) *ProductReadStore {
	return &ProductReadStore{pool: pool}
}

func (s *ProductReadStore) FindAll(ctx context.Context) ([]*queries.ProductView, error) {
	const q = `
SELECT id, name, COALESCE(sku, ''), COALESCE(description, ''), price_cents, stock, active, created_at
FROM products
ORDER BY name, id
`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query products", err)
	}
	defer rows.Close()

	views := []*queries.ProductView{}
	for rows.Next() {
		var v queries.ProductView
		err := rows.Scan(&v.ID, &v.Name, &v.SKU, &v.Description, &v.PriceCents, &v.Stock, &v.Active, &v.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan product", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate products", err)
	}
	return views, nil
}
