package sale

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoItems              = errors.New("sale requires at least one item")
	ErrSaleFinalized        = errors.New("sale is already paid or cancelled")
	ErrAmountMismatch       = errors.New("payment amount does not match sale total")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Sale is one committed transaction in the ledger. Sales are append-only:
// there is no delete, only the Pending -> Paid / Cancelled transitions.
type Sale struct {
	id            uuid.UUID
	customerID    *uuid.UUID
	items         []LineItem
	total         Money
	status        Status
	paymentMethod *PaymentMethod
	createdAt     time.Time
	updatedAt     time.Time
}

// NewSale creates a Pending sale. The total is always derived from the
// items; a caller-supplied total is never trusted.
func NewSale(customerID *uuid.UUID, items []LineItem, now time.Time) (*Sale, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	return &Sale{
		id:         uuid.New(),
		customerID: customerID,
		items:      items,
		total:      TotalOf(items),
		status:     StatusPending,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructSale(
	id uuid.UUID,
	customerID *uuid.UUID,
	items []LineItem,
	status Status,
	paymentMethod *PaymentMethod,
	createdAt, updatedAt time.Time,
) *Sale {
	return &Sale{
		id:            id,
		customerID:    customerID,
		items:         items,
		total:         TotalOf(items),
		status:        status,
		paymentMethod: paymentMethod,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// TotalOf recomputes the authoritative total from the line items.
func TotalOf(items []LineItem) Money {
	var total Money
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Pay transitions Pending -> Paid. The amount must equal the stored total;
// terminal sales reject any further transition.
func (s *Sale) Pay(method PaymentMethod, amount Money, now time.Time) error {
	if s.status.IsTerminal() {
		return ErrSaleFinalized
	}
	if !method.IsValid() {
		return ErrInvalidPaymentMethod
	}
	if !amount.Equals(s.total) {
		return ErrAmountMismatch
	}

	s.status = StatusPaid
	s.paymentMethod = &method
	s.updatedAt = now
	return nil
}

// Cancel transitions Pending -> Cancelled.
func (s *Sale) Cancel(now time.Time) error {
	if s.status.IsTerminal() {
		return ErrSaleFinalized
	}

	s.status = StatusCancelled
	s.updatedAt = now
	return nil
}

func (s *Sale) ID() uuid.UUID                  { return s.id }
func (s *Sale) CustomerID() *uuid.UUID         { return s.customerID }
func (s *Sale) Items() []LineItem              { return s.items }
func (s *Sale) Total() Money                   { return s.total }
func (s *Sale) Status() Status                 { return s.status }
func (s *Sale) PaymentMethod() *PaymentMethod  { return s.paymentMethod }
func (s *Sale) CreatedAt() time.Time           { return s.createdAt }
func (s *Sale) UpdatedAt() time.Time           { return s.updatedAt }

func (s *Sale) IsPending() bool {
	return s.status == StatusPending
}
