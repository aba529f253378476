package readstore

import (
	"context"

	"maspatas/internal/infra"
	"maspatas/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerReadStore struct {
	pool *pgxpool.Pool
}

func NewCustomerReadStore(pool *pgxpool.Pool) *CustomerReadStore {
	return &CustomerReadStore{pool: pool}
}

func (s *CustomerReadStore) FindAll(ctx context.Context) ([]*queries.CustomerView, error) {
	const q = `
SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), created_at
FROM customers
ORDER BY name, id
`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query customers", err)
	}
	defer rows.Close()

	views := []*queries.CustomerView{}
	for rows.Next() {
		var v queries.CustomerView
		err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan customer", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate customers", err)
	}
	return views, nil
}
