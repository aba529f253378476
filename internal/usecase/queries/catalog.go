package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ProductView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int64     `json:"stock"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type CustomerView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type CatalogQueries interface {
	ListProducts(ctx context.Context) ([]*ProductView, error)
	ListCustomers(ctx context.Context) ([]*CustomerView, error)
}

type ProductReadStore interface {
	FindAll(ctx context.Context) ([]*ProductView, error)
}

type CustomerReadStore interface {
	FindAll(ctx context.Context) ([]*CustomerView, error)
}

type catalogQueriesImpl struct {
	products  ProductReadStore
	customers CustomerReadStore
}

func NewCatalogQueries(products ProductReadStore, customers CustomerReadStore) CatalogQueries {
	return &catalogQueriesImpl{products: products, customers: customers}
}

func (q *catalogQueriesImpl) ListProducts(ctx context.Context) ([]*ProductView, error) {
	return q.products.FindAll(ctx)
}

func (q *catalogQueriesImpl) ListCustomers(ctx context.Context) ([]*CustomerView, error) {
	return q.customers.FindAll(ctx)
}
