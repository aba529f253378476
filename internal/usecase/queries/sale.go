package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type SaleView struct {
	ID            uuid.UUID      `json:"id"`
	CustomerID    *uuid.UUID     `json:"customer_id,omitempty"`
	Items         []SaleItemView `json:"items"`
	TotalCents    int64          `json:"total_cents"`
	Status        string         `json:"status"`
	PaymentMethod *string        `json:"payment_method,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type SaleItemView struct {
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int64     `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

// LedgerSummary aggregates the ledger for the dashboard cards. Revenue
// excludes cancelled sales; GrossCents keeps the legacy all-status sum the
// old dashboard displayed so the two can be compared.
type LedgerSummary struct {
	TotalSales   int64 `json:"total_sales"`
	PendingSales int64 `json:"pending_sales"`
	RevenueCents int64 `json:"revenue_cents"`
	GrossCents   int64 `json:"gross_cents"`
}

type SaleQueries interface {
	// List returns the full ledger, newest first.
	List(ctx context.Context) ([]*SaleView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SaleView, error)
	Summary(ctx context.Context) (*LedgerSummary, error)
}

type SaleReadStore interface {
	FindAll(ctx context.Context) ([]*SaleView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*SaleView, error)
	Summarize(ctx context.Context) (*LedgerSummary, error)
}

type saleQueriesImpl struct {
	store SaleReadStore
}

func NewSaleQueries(store SaleReadStore) SaleQueries {
	return &saleQueriesImpl{store: store}
}

func (q *saleQueriesImpl) List(ctx context.Context) ([]*SaleView, error) {
	return q.store.FindAll(ctx)
}

func (q *saleQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SaleView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *saleQueriesImpl) Summary(ctx context.Context) (*LedgerSummary, error) {
	return q.store.Summarize(ctx)
}
