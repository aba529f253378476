package sale

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrLineOutOfRange = errors.New("line index out of range")
	ErrLastLine       = errors.New("draft must keep at least one line")
	ErrUnknownField   = errors.New("unknown line field")
)

// Field names accepted by SetLineField.
type Field string

const (
	FieldQuantity  Field = "quantity"
	FieldUnitPrice Field = "unitPrice"
)

// PriceSource resolves a product's current price when the product of a line
// is selected. The catalog cache implements it.
type PriceSource interface {
	ProductPrice(id uuid.UUID) (Money, bool)
}

// DraftLine holds entry-form values as entered. Coercion to numbers happens
// only at validation/build time, so half-typed input never breaks editing.
type DraftLine struct {
	ProductID string
	Quantity  string
	UnitPrice string
}

func emptyLine() DraftLine {
	return DraftLine{Quantity: "1", UnitPrice: "0"}
}

// Draft accumulates one unsubmitted sale. Exactly one draft exists per open
// creation dialog; it is not safe for concurrent use and does not need to be.
type Draft struct {
	lines      []DraftLine
	customerID *uuid.UUID
}

// NewDraft starts with a single empty line, matching the entry form.
func NewDraft() *Draft {
	return &Draft{lines: []DraftLine{emptyLine()}}
}

func (d *Draft) Lines() []DraftLine {
	out := make([]DraftLine, len(d.lines))
	copy(out, d.lines)
	return out
}

func (d *Draft) CustomerID() *uuid.UUID {
	return d.customerID
}

// SetCustomer selects the customer; nil means a walk-in sale.
func (d *Draft) SetCustomer(id *uuid.UUID) {
	d.customerID = id
}

func (d *Draft) AddLine() {
	d.lines = append(d.lines, emptyLine())
}

// SetLineProduct sets the product and defaults the unit price from the
// catalog's current price. The defaulted price stays editable afterwards.
func (d *Draft) SetLineProduct(index int, productID uuid.UUID, prices PriceSource) error {
	if index < 0 || index >= len(d.lines) {
		return ErrLineOutOfRange
	}

	d.lines[index].ProductID = productID.String()
	if price, ok := prices.ProductPrice(productID); ok {
		d.lines[index].UnitPrice = formatMoney(price)
	}
	return nil
}

// SetLineField stores the raw value as entered.
func (d *Draft) SetLineField(index int, field Field, value string) error {
	if index < 0 || index >= len(d.lines) {
		return ErrLineOutOfRange
	}

	switch field {
	case FieldQuantity:
		d.lines[index].Quantity = value
	case FieldUnitPrice:
		d.lines[index].UnitPrice = value
	default:
		return ErrUnknownField
	}
	return nil
}

// RemoveLine never reduces the draft below one line.
func (d *Draft) RemoveLine(index int) error {
	if index < 0 || index >= len(d.lines) {
		return ErrLineOutOfRange
	}
	if len(d.lines) == 1 {
		return ErrLastLine
	}

	d.lines = append(d.lines[:index], d.lines[index+1:]...)
	return nil
}

// Subtotal is quantity x unit price for one line; unparseable input counts
// as zero, mirroring the entry form's live display.
func (d *Draft) Subtotal(index int) Money {
	if index < 0 || index >= len(d.lines) {
		return Money{}
	}
	line := d.lines[index]
	qty, _ := parseQuantity(line.Quantity)
	price, _ := parsePrice(line.UnitPrice)
	return price.MulQuantity(qty)
}

// Total is recomputed from the lines on every call, never cached.
func (d *Draft) Total() Money {
	var total Money
	for i := range d.lines {
		total = total.Add(d.Subtotal(i))
	}
	return total
}

// Validate reports the first violated rule, checked in order: at least one
// item, product selected, quantity > 0, unit price >= 0.
func (d *Draft) Validate() error {
	if len(d.lines) == 0 {
		return ErrNoItems
	}

	for _, line := range d.lines {
		if strings.TrimSpace(line.ProductID) == "" {
			return ErrProductRequired
		}
		if qty, err := parseQuantity(line.Quantity); err != nil || qty <= 0 {
			return ErrInvalidQuantity
		}
		if price, err := parsePrice(line.UnitPrice); err != nil || price.IsNegative() {
			return ErrInvalidUnitPrice
		}
	}
	return nil
}

// Build coerces the draft into validated line items ready for submission.
func (d *Draft) Build() ([]LineItem, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	items := make([]LineItem, 0, len(d.lines))
	for _, line := range d.lines {
		productID, err := uuid.Parse(strings.TrimSpace(line.ProductID))
		if err != nil {
			return nil, ErrProductRequired
		}
		qty, _ := parseQuantity(line.Quantity)
		price, _ := parsePrice(line.UnitPrice)

		item, err := NewLineItem(productID, qty, price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func parseQuantity(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func parsePrice(s string) (Money, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Money{}, err
	}
	return NewMoneyFromFloat(f), nil
}

func formatMoney(m Money) string {
	return strconv.FormatFloat(m.Float(), 'f', -1, 64)
}
