package request

import (
	"maspatas/internal/domain/sale"
	"maspatas/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateProductRequest struct {
	Name         string  `json:"name" binding:"required"`
	SKU          string  `json:"sku,omitempty"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	InitialStock int64   `json:"initialStock,omitempty" binding:"gte=0"`
}

func (r CreateProductRequest) ToInput() commands.CreateProductInput {
	return commands.CreateProductInput{
		Name:         r.Name,
		SKU:          r.SKU,
		Description:  r.Description,
		PriceCents:   sale.NewMoneyFromFloat(r.Price).Cents(),
		InitialStock: r.InitialStock,
	}
}

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone,omitempty"`
}

func (r CreateCustomerRequest) ToInput() commands.CreateCustomerInput {
	return commands.CreateCustomerInput{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
	}
}

type UpdateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone,omitempty"`
}

func (r UpdateCustomerRequest) ToInput(id uuid.UUID) commands.UpdateCustomerInput {
	return commands.UpdateCustomerInput{
		ID:    id,
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
	}
}
