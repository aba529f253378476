package client

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// LedgerView is the read model behind the sales table: rows newest first,
// expandable into item lines, with display names resolved via the catalog
// cache and aggregate figures recomputed from the rows themselves.
type LedgerView struct {
	gateway *Gateway
	catalog *CatalogCache

	sales []Sale
}

func NewLedgerView(gateway *Gateway, catalog *CatalogCache) *LedgerView {
	return &LedgerView{gateway: gateway, catalog: catalog}
}

// Refresh reloads the ledger from the server.
func (v *LedgerView) Refresh(ctx context.Context) error {
	sales, err := v.gateway.ListSales(ctx)
	if err != nil {
		return err
	}

	// The server already orders newest first; sorting again keeps the view
	// correct even against older servers.
	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].CreatedAt.After(sales[j].CreatedAt)
	})
	v.sales = sales
	return nil
}

type LedgerRow struct {
	SaleID       uuid.UUID
	CustomerName string
	ItemCount    int64
	Total        float64
	Status       int32
	StatusLabel  string
	CreatedAt    time.Time
}

type LedgerItemRow struct {
	ProductName string
	Quantity    int64
	UnitPrice   float64
	Subtotal    float64
}

// Rows returns the table rows, newest first.
func (v *LedgerView) Rows() []LedgerRow {
	rows := make([]LedgerRow, 0, len(v.sales))
	for _, s := range v.sales {
		var count int64
		for _, item := range s.Items {
			count += item.Quantity
		}
		rows = append(rows, LedgerRow{
			SaleID:       s.ID,
			CustomerName: v.catalog.CustomerName(s.CustomerID),
			ItemCount:    count,
			Total:        s.Total,
			Status:       s.Status,
			StatusLabel:  s.StatusLabel,
			CreatedAt:    s.CreatedAt,
		})
	}
	return rows
}

// ItemRows expands one sale into its item lines.
func (v *LedgerView) ItemRows(saleID uuid.UUID) []LedgerItemRow {
	for _, s := range v.sales {
		if s.ID != saleID {
			continue
		}
		rows := make([]LedgerItemRow, 0, len(s.Items))
		for _, item := range s.Items {
			rows = append(rows, LedgerItemRow{
				ProductName: v.catalog.ProductName(item.ProductID),
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Subtotal:    item.Subtotal,
			})
		}
		return rows
	}
	return nil
}

const statusCancelled int32 = 3

// TotalRevenue sums pending and paid sales; cancelled sales never count.
func (v *LedgerView) TotalRevenue() float64 {
	var total float64
	for _, s := range v.sales {
		if s.Status == statusCancelled {
			continue
		}
		total += s.Total
	}
	return total
}

// SaleCount is the number of rows in the ledger, cancelled included.
func (v *LedgerView) SaleCount() int {
	return len(v.sales)
}

// PendingCount counts sales still awaiting payment or cancellation.
func (v *LedgerView) PendingCount() int {
	const statusPending int32 = 1
	n := 0
	for _, s := range v.sales {
		if s.Status == statusPending {
			n++
		}
	}
	return n
}
