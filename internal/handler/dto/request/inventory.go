package request

import (
	"maspatas/internal/usecase/commands"

	"github.com/google/uuid"
)

type AdjustStockRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Type      string    `json:"type" binding:"required,oneof=IN OUT in out"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
	Reason    string    `json:"reason,omitempty"`
}

func (r AdjustStockRequest) ToInput() commands.AdjustStockInput {
	return commands.AdjustStockInput{
		ProductID: r.ProductID,
		Type:      r.Type,
		Quantity:  r.Quantity,
		Reason:    r.Reason,
	}
}
