package response

import (
	"time"

	"maspatas/internal/domain/sale"
	"maspatas/internal/usecase/queries"

	"github.com/google/uuid"
)

type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	CustomerID    *uuid.UUID         `json:"customerId,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	Total         float64            `json:"total"`
	Status        int32              `json:"status"`
	StatusLabel   string             `json:"statusLabel"`
	PaymentMethod *string            `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

type SaleItemResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int64     `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
	Subtotal  float64   `json:"subtotal"`
}

type LedgerSummaryResponse struct {
	TotalSales   int64   `json:"totalSales"`
	PendingSales int64   `json:"pendingSales"`
	Revenue      float64 `json:"revenue"`
	GrossTotal   float64 `json:"grossTotal"`
}

func FromSaleView(v *queries.SaleView) *SaleResponse {
	status := sale.Status(v.Status)

	items := make([]SaleItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		unitPrice := sale.NewMoney(it.UnitPriceCents)
		items = append(items, SaleItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: unitPrice.Float(),
			Subtotal:  unitPrice.MulQuantity(it.Quantity).Float(),
		})
	}

	var method *string
	if v.PaymentMethod != nil {
		label := sale.PaymentMethod(*v.PaymentMethod).Label()
		method = &label
	}

	return &SaleResponse{
		ID:            v.ID,
		CustomerID:    v.CustomerID,
		Items:         items,
		Total:         sale.NewMoney(v.TotalCents).Float(),
		Status:        status.Code(),
		StatusLabel:   status.Label(),
		PaymentMethod: method,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func FromSaleViews(views []*queries.SaleView) []*SaleResponse {
	out := make([]*SaleResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromSaleView(v))
	}
	return out
}

func FromLedgerSummary(s *queries.LedgerSummary) *LedgerSummaryResponse {
	return &LedgerSummaryResponse{
		TotalSales:   s.TotalSales,
		PendingSales: s.PendingSales,
		Revenue:      sale.NewMoney(s.RevenueCents).Float(),
		GrossTotal:   sale.NewMoney(s.GrossCents).Float(),
	}
}
