package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types (CQRS separation)
type ProductSnapshot struct {
	ID         uuid.UUID
	Name       string
	PriceCents int64
	Stock      int64
	Active     bool
}

type CustomerSnapshot struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type SaleSnapshot struct {
	ID         uuid.UUID
	CustomerID *uuid.UUID
	Status     string
	TotalCents int64
	Items      []SaleItemSnapshot
}

type SaleItemSnapshot struct {
	ProductID      uuid.UUID
	Quantity       int64
	UnitPriceCents int64
}

type IdempotencyRecord struct {
	Key          uuid.UUID
	UserID       uuid.UUID
	Endpoint     string
	Status       string
	RequestHash  string
	ResultSaleID *uuid.UUID
	ExpiresAt    time.Time
}

// MovementRecord is the write model for one inventory movement row.
type MovementRecord struct {
	ProductID    uuid.UUID
	Type         string // "IN" or "OUT"
	Quantity     int64
	BalanceAfter int64
	Reason       string
	UserID       *uuid.UUID
	SaleID       *uuid.UUID
}
