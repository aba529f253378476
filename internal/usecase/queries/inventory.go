package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type StockView struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	SKU         string    `json:"sku"`
	Stock       int64     `json:"stock"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MovementView struct {
	ID           uuid.UUID  `json:"id"`
	ProductID    uuid.UUID  `json:"product_id"`
	Type         string     `json:"type"`
	Quantity     int64      `json:"quantity"`
	BalanceAfter int64      `json:"balance_after"`
	Reason       string     `json:"reason"`
	UserName     *string    `json:"user_name,omitempty"`
	SaleID       *uuid.UUID `json:"sale_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type InventoryQueries interface {
	ListStock(ctx context.Context) ([]*StockView, error)
	ListMovements(ctx context.Context, productID *uuid.UUID) ([]*MovementView, error)
}

type InventoryReadStore interface {
	FindStock(ctx context.Context) ([]*StockView, error)
	FindMovements(ctx context.Context, productID *uuid.UUID) ([]*MovementView, error)
}

type inventoryQueriesImpl struct {
	store InventoryReadStore
}

func NewInventoryQueries(store InventoryReadStore) InventoryQueries {
	return &inventoryQueriesImpl{store: store}
}

func (q *inventoryQueriesImpl) ListStock(ctx context.Context) ([]*StockView, error) {
	return q.store.FindStock(ctx)
}

func (q *inventoryQueriesImpl) ListMovements(ctx context.Context, productID *uuid.UUID) ([]*MovementView, error) {
	return q.store.FindMovements(ctx, productID)
}
