package readstore

import (
	"context"

	"maspatas/internal/infra"
	"maspatas/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SaleReadStore struct {
	pool *pgxpool.Pool
}

func NewSaleReadStore(pool *pgxpool.Pool) *SaleReadStore {
	return &SaleReadStore{pool: pool}
}

const saleColumns = `
SELECT s.id, s.customer_id, s.total_cents, s.status, s.payment_method, s.created_at, s.updated_at
FROM sales s
`

func (s *SaleReadStore) FindAll(ctx context.Context) ([]*queries.SaleView, error) {
	rows, err := s.pool.Query(ctx, saleColumns+`ORDER BY s.created_at DESC, s.id DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query sales", err)
	}
	defer rows.Close()

	var views []*queries.SaleView
	index := make(map[uuid.UUID]*queries.SaleView)
	for rows.Next() {
		v, err := scanSale(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan sale", err)
		}
		views = append(views, v)
		index[v.ID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate sales", err)
	}
	if len(views) == 0 {
		return []*queries.SaleView{}, nil
	}

	if err := s.attachItems(ctx, index, nil); err != nil {
		return nil, err
	}
	return views, nil
}

func (s *SaleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SaleView, error) {
	row := s.pool.QueryRow(ctx, saleColumns+`WHERE s.id = $1`, id)
	v, err := scanSale(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("sale not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find sale", err)
	}

	index := map[uuid.UUID]*queries.SaleView{v.ID: v}
	if err := s.attachItems(ctx, index, &id); err != nil {
		return nil, err
	}
	return v, nil
}

// Summarize computes the dashboard aggregates in one round trip. Revenue
// counts pending and paid sales only; cancelled rows contribute to the
// gross figure alone.
func (s *SaleReadStore) Summarize(ctx context.Context) (*queries.LedgerSummary, error) {
	const q = `
SELECT
    COUNT(*),
    COUNT(*) FILTER (WHERE status = 'pending'),
    COALESCE(SUM(total_cents) FILTER (WHERE status <> 'cancelled'), 0),
    COALESCE(SUM(total_cents), 0)
FROM sales
`
	var summary queries.LedgerSummary
	err := s.pool.QueryRow(ctx, q).Scan(
		&summary.TotalSales, &summary.PendingSales, &summary.RevenueCents, &summary.GrossCents)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to summarize sales", err)
	}
	return &summary, nil
}

func scanSale(row pgx.Row) (*queries.SaleView, error) {
	var v queries.SaleView
	err := row.Scan(&v.ID, &v.CustomerID, &v.TotalCents, &v.Status, &v.PaymentMethod, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	v.Items = []queries.SaleItemView{}
	return &v, nil
}

func (s *SaleReadStore) attachItems(ctx context.Context, index map[uuid.UUID]*queries.SaleView, saleID *uuid.UUID) error {
	q := `
SELECT sale_id, product_id, quantity, unit_price_cents
FROM sale_items
`
	args := []any{}
	if saleID != nil {
		q += `WHERE sale_id = $1
`
		args = append(args, *saleID)
	}
	q += `ORDER BY sale_id, position`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to query sale items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			saleID uuid.UUID
			item   queries.SaleItemView
		)
		if err := rows.Scan(&saleID, &item.ProductID, &item.Quantity, &item.UnitPriceCents); err != nil {
			return infra.WrapRepoErr("failed to scan sale item", err)
		}
		if v, ok := index[saleID]; ok {
			v.Items = append(v.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to iterate sale items", err)
	}
	return nil
}
