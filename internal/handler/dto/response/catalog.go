package response

import (
	"time"

	"maspatas/internal/domain/sale"
	"maspatas/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku,omitempty"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int64     `json:"stock"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromProductView(v *queries.ProductView) *ProductResponse {
	var resp ProductResponse
	_ = copier.Copy(&resp, v)
	resp.Price = sale.NewMoney(v.PriceCents).Float()
	return &resp
}

func FromProductViews(views []*queries.ProductView) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromProductView(v))
	}
	return out
}

func FromCustomerView(v *queries.CustomerView) *CustomerResponse {
	var resp CustomerResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromCustomerViews(views []*queries.CustomerView) []*CustomerResponse {
	out := make([]*CustomerResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromCustomerView(v))
	}
	return out
}
