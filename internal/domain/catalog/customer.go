package catalog

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrCustomerEmailInvalid = errors.New("customer email is invalid")
)

var customerEmailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

func NewCustomer(name, email, phone string) (*Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, ErrCustomerNameRequired
	}
	if email == "" || !customerEmailRegex.MatchString(email) {
		return nil, ErrCustomerEmailInvalid
	}

	return &Customer{
		ID:    uuid.New(),
		Name:  name,
		Email: email,
		Phone: strings.TrimSpace(phone),
	}, nil
}

// DisplayName falls back name -> email -> id, mirroring how the ledger
// table labels customers.
func (c Customer) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Email != "" {
		return c.Email
	}
	return c.ID.String()
}
