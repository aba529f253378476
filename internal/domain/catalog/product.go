package catalog

import (
	"errors"
	"strings"
	"time"

	"maspatas/internal/domain/sale"

	"github.com/google/uuid"
)

var (
	ErrProductNameRequired = errors.New("product name is required")
	ErrProductPriceInvalid = errors.New("product price must be greater than zero")
)

// Product is a catalog item. The sales workflow reads it to default line
// prices; stock is maintained through inventory movements.
type Product struct {
	ID          uuid.UUID
	Name        string
	SKU         string
	Description string
	Price       sale.Money
	Stock       int64
	Active      bool
	CreatedAt   time.Time
}

func NewProduct(name, sku, description string, price sale.Money) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrProductNameRequired
	}
	if price.Cents() <= 0 {
		return nil, ErrProductPriceInvalid
	}

	return &Product{
		ID:          uuid.New(),
		Name:        name,
		SKU:         strings.TrimSpace(sku),
		Description: strings.TrimSpace(description),
		Price:       price,
		Active:      true,
	}, nil
}
