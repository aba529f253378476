package request

import (
	"maspatas/internal/domain/sale"
	"maspatas/internal/usecase/commands"

	"github.com/google/uuid"
)

// Money travels the wire as a unit-major JSON number (e.g. 19.99) and is
// converted to cents at the boundary.

type SellRequest struct {
	RequestID  uuid.UUID         `json:"requestId" binding:"required"`
	CustomerID *uuid.UUID        `json:"customerId,omitempty"`
	Items      []SellItemRequest `json:"items" binding:"required,min=1,dive"`
}

type SellItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64   `json:"unitPrice" binding:"gte=0"`
}

func (r SellRequest) ToInput() commands.SellInput {
	items := make([]commands.SellItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, commands.SellItemInput{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: sale.NewMoneyFromFloat(it.UnitPrice).Cents(),
		})
	}
	return commands.SellInput{
		CustomerID: r.CustomerID,
		Items:      items,
	}
}

type PayRequest struct {
	RequestID uuid.UUID `json:"requestId" binding:"required"`
	Method    string    `json:"method" binding:"required"`
	Amount    float64   `json:"amount" binding:"required,gt=0"`
}

func (r PayRequest) ToInput() commands.PayInput {
	return commands.PayInput{
		Method:      r.Method,
		AmountCents: sale.NewMoneyFromFloat(r.Amount).Cents(),
	}
}

type CancelRequest struct {
	RequestID uuid.UUID `json:"requestId" binding:"required"`
}
