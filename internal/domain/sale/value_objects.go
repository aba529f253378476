package sale

import (
	"errors"
	"math"

	"github.com/google/uuid"
)

var (
	ErrProductRequired  = errors.New("line item requires a product")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidUnitPrice = errors.New("unit price cannot be negative")
)

// Money is an amount in integer cents. Integer arithmetic keeps ledger
// totals exact across recomputation.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

// NewMoneyFromFloat converts a unit-major JSON number (e.g. 19.99) to cents,
// rounding half away from zero.
func NewMoneyFromFloat(amount float64) Money {
	return Money{cents: int64(math.Round(amount * 100))}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Float() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) IsNegative() bool {
	return m.cents < 0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) MulQuantity(quantity int64) Money {
	return Money{cents: m.cents * quantity}
}

func (m Money) Equals(other Money) bool {
	return m.cents == other.cents
}

// LineItem is one product line within a Sale. The unit price is a snapshot
// taken at entry time; it does not follow later catalog price changes.
type LineItem struct {
	productID uuid.UUID
	quantity  int64
	unitPrice Money
}

func NewLineItem(productID uuid.UUID, quantity int64, unitPrice Money) (LineItem, error) {
	if productID == uuid.Nil {
		return LineItem{}, ErrProductRequired
	}
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return LineItem{}, ErrInvalidUnitPrice
	}
	return LineItem{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

func (li LineItem) ProductID() uuid.UUID { return li.productID }
func (li LineItem) Quantity() int64      { return li.quantity }
func (li LineItem) UnitPrice() Money     { return li.unitPrice }

func (li LineItem) Subtotal() Money {
	return li.unitPrice.MulQuantity(li.quantity)
}
