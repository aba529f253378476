package repository

import (
	"context"

	"maspatas/internal/domain/catalog"
	"maspatas/internal/infra/db"

	"github.com/google/uuid"
)

type CustomerRepository struct{}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

func (r *CustomerRepository) Create(ctx context.Context, tx db.DBTX, c *catalog.Customer) (uuid.UUID, error) {
	const q = `
INSERT INTO customers (id, name, email, phone)
VALUES ($1, $2, $3, NULLIF($4, ''))
`
	_, err := tx.Exec(ctx, q, c.ID, c.Name, c.Email, c.Phone)
	if err != nil {
		return uuid.Nil, classifyPgError("failed to insert customer", err)
	}
	return c.ID, nil
}

func (r *CustomerRepository) Update(ctx context.Context, tx db.DBTX, c *catalog.Customer) (int64, error) {
	const q = `
UPDATE customers
SET name = $2, email = $3, phone = NULLIF($4, ''), updated_at = now()
WHERE id = $1
`
	tag, err := tx.Exec(ctx, q, c.ID, c.Name, c.Email, c.Phone)
	if err != nil {
		return 0, classifyPgError("failed to update customer", err)
	}
	return tag.RowsAffected(), nil
}

func (r *CustomerRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) (int64, error) {
	const q = `DELETE FROM customers WHERE id = $1`
	tag, err := tx.Exec(ctx, q, id)
	if err != nil {
		return 0, classifyPgError("failed to delete customer", err)
	}
	return tag.RowsAffected(), nil
}
