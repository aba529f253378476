//go:build unit || e2e

package builder

import (
	"time"

	domsale "maspatas/internal/domain/sale"
	"maspatas/internal/usecase/commands"
	"maspatas/internal/usecase/queries"

	"github.com/google/uuid"
)

type SaleItemSpec struct {
	ProductID      uuid.UUID
	Quantity       int64
	UnitPriceCents int64
}

type SaleBuilder struct {
	CustomerID *uuid.UUID
	Items      []SaleItemSpec
	CreatedAt  time.Time
}

func NewSaleBuilder() *SaleBuilder {
	customerID := uuid.New()
	return &SaleBuilder{
		CustomerID: &customerID,
		Items: []SaleItemSpec{
			{ProductID: uuid.New(), Quantity: 2, UnitPriceCents: 1500},
		},
		CreatedAt: time.Now(),
	}
}

func (b *SaleBuilder) With(mutate func(*SaleBuilder)) *SaleBuilder {
	mutate(b)
	return b
}

func (b *SaleBuilder) BuildDomain() (*domsale.Sale, error) {
	items := make([]domsale.LineItem, 0, len(b.Items))
	for _, it := range b.Items {
		item, err := domsale.NewLineItem(it.ProductID, it.Quantity, domsale.NewMoney(it.UnitPriceCents))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return domsale.NewSale(b.CustomerID, items, b.CreatedAt)
}

func (b *SaleBuilder) BuildSellInput() commands.SellInput {
	items := make([]commands.SellItemInput, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, commands.SellItemInput{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		})
	}
	return commands.SellInput{CustomerID: b.CustomerID, Items: items}
}

func (b *SaleBuilder) BuildView(id uuid.UUID, status domsale.Status) *queries.SaleView {
	items := make([]queries.SaleItemView, 0, len(b.Items))
	var total int64
	for _, it := range b.Items {
		items = append(items, queries.SaleItemView{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		})
		total += it.Quantity * it.UnitPriceCents
	}
	return &queries.SaleView{
		ID:         id,
		CustomerID: b.CustomerID,
		Items:      items,
		TotalCents: total,
		Status:     status.String(),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.CreatedAt,
	}
}
