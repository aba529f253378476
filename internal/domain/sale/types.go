package sale

import (
	"errors"
	"strings"
)

var ErrUnknownStatus = errors.New("unknown sale status")

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// Wire codes used by the dashboard frontend.
const (
	codePending   int32 = 1
	codePaid      int32 = 2
	codeCancelled int32 = 3
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled:
		return true
	default:
		return false
	}
}

// Paid and Cancelled are terminal: no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

func (s Status) Code() int32 {
	switch s {
	case StatusPaid:
		return codePaid
	case StatusCancelled:
		return codeCancelled
	default:
		return codePending
	}
}

// Label is the human-readable form shown in the ledger table.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusPaid:
		return "Paid"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrUnknownStatus
	}
	return status, nil
}

func StatusFromCode(code int32) (Status, error) {
	switch code {
	case codePending:
		return StatusPending, nil
	case codePaid:
		return StatusPaid, nil
	case codeCancelled:
		return StatusCancelled, nil
	default:
		return "", ErrUnknownStatus
	}
}

type PaymentMethod string

// Stored lowercase; Label renders the form shown in the UI dropdown.
const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentNequi    PaymentMethod = "nequi"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentNequi:
		return true
	default:
		return false
	}
}

func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Cash"
	case PaymentCard:
		return "Card"
	case PaymentTransfer:
		return "Transfer"
	case PaymentNequi:
		return "Nequi"
	default:
		return "Unknown"
	}
}

// NewPaymentMethod accepts any casing so "Cash" and "cash" both parse.
func NewPaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(s))
	if !m.IsValid() {
		return "", ErrInvalidPaymentMethod
	}
	return m, nil
}
