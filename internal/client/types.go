package client

import (
	"time"

	"github.com/google/uuid"
)

// Wire types mirror the dashboard API's JSON. Money is unit-major.

type Sale struct {
	ID            uuid.UUID  `json:"id"`
	CustomerID    *uuid.UUID `json:"customerId,omitempty"`
	Items         []SaleItem `json:"items"`
	Total         float64    `json:"total"`
	Status        int32      `json:"status"`
	StatusLabel   string     `json:"statusLabel"`
	PaymentMethod *string    `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type SaleItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int64     `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
	Subtotal  float64   `json:"subtotal"`
}

type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku,omitempty"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int64     `json:"stock"`
	Active      bool      `json:"active"`
}

type Customer struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
	Phone string    `json:"phone,omitempty"`
}

type LedgerSummary struct {
	TotalSales   int64   `json:"totalSales"`
	PendingSales int64   `json:"pendingSales"`
	Revenue      float64 `json:"revenue"`
	GrossTotal   float64 `json:"grossTotal"`
}

type SellRequest struct {
	RequestID  uuid.UUID      `json:"requestId"`
	CustomerID *uuid.UUID     `json:"customerId,omitempty"`
	Items      []SellItemWire `json:"items"`
}

type SellItemWire struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int64     `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
}

type PayRequest struct {
	RequestID uuid.UUID `json:"requestId"`
	Method    string    `json:"method"`
	Amount    float64   `json:"amount"`
}

type CancelRequest struct {
	RequestID uuid.UUID `json:"requestId"`
}
