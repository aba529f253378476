package response

import (
	"time"

	"maspatas/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type StockResponse struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	SKU         string    `json:"sku,omitempty"`
	Stock       int64     `json:"stock"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type MovementResponse struct {
	ID           uuid.UUID  `json:"id"`
	ProductID    uuid.UUID  `json:"productId"`
	Type         string     `json:"type"`
	Quantity     int64      `json:"quantity"`
	BalanceAfter int64      `json:"balanceAfter"`
	Reason       string     `json:"reason,omitempty"`
	UserName     *string    `json:"userName,omitempty"`
	SaleID       *uuid.UUID `json:"saleId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type AdjustStockResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Balance   int64     `json:"balance"`
}

func FromStockViews(views []*queries.StockView) []*StockResponse {
	out := make([]*StockResponse, 0, len(views))
	for _, v := range views {
		var resp StockResponse
		_ = copier.Copy(&resp, v)
		out = append(out, &resp)
	}
	return out
}

func FromMovementViews(views []*queries.MovementView) []*MovementResponse {
	out := make([]*MovementResponse, 0, len(views))
	for _, v := range views {
		var resp MovementResponse
		_ = copier.Copy(&resp, v)
		out = append(out, &resp)
	}
	return out
}
