package commands

import (
	"context"

	"maspatas/internal/domain/catalog"
	"maspatas/internal/domain/sale"
	"maspatas/internal/infra"
	"maspatas/internal/pkg/errs"
	"maspatas/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDuplicateSKU      = errs.New("sku already exists")
	ErrDuplicateCustomer = errs.New("customer email already exists")
	ErrCustomerInUse     = errs.New("customer has sales and cannot be deleted")
)

type CreateProductInput struct {
	Name         string
	SKU          string
	Description  string
	PriceCents   int64
	InitialStock int64
}

type CreateCustomerInput struct {
	Name  string
	Email string
	Phone string
}

type UpdateCustomerInput struct {
	ID    uuid.UUID
	Name  string
	Email string
	Phone string
}

type CatalogCommands interface {
	CreateProduct(ctx context.Context, input CreateProductInput, userID uuid.UUID) (uuid.UUID, error)
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (uuid.UUID, error)
	UpdateCustomer(ctx context.Context, input UpdateCustomerInput) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type catalogCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewCatalogCommands(uow shared.UnitOfWork) CatalogCommands {
	return &catalogCommandsImpl{uow: uow}
}

func (c *catalogCommandsImpl) CreateProduct(ctx context.Context, input CreateProductInput, userID uuid.UUID) (uuid.UUID, error) {
	product, err := catalog.NewProduct(input.Name, input.SKU, input.Description, sale.NewMoney(input.PriceCents))
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Products().Create(ctx, tx.DB(), product); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateSKU
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// An opening balance is recorded as a movement so the audit trail
		// starts at the true quantity rather than an implicit zero.
		if input.InitialStock > 0 {
			balance, err := tx.Inventory().AdjustStock(ctx, tx.DB(), product.ID, input.InitialStock)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			_, err = tx.Inventory().RecordMovement(ctx, tx.DB(), shared.MovementRecord{
				ProductID:    product.ID,
				Type:         "IN",
				Quantity:     input.InitialStock,
				BalanceAfter: balance,
				Reason:       "initial stock",
				UserID:       &userID,
			})
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return product.ID, nil
}

func (c *catalogCommandsImpl) CreateCustomer(ctx context.Context, input CreateCustomerInput) (uuid.UUID, error) {
	customer, err := catalog.NewCustomer(input.Name, input.Email, input.Phone)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Customers().Create(ctx, tx.DB(), customer); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateCustomer
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return customer.ID, nil
}

func (c *catalogCommandsImpl) UpdateCustomer(ctx context.Context, input UpdateCustomerInput) error {
	customer, err := catalog.NewCustomer(input.Name, input.Email, input.Phone)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	customer.ID = input.ID

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		affected, err := tx.Customers().Update(ctx, tx.DB(), customer)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateCustomer
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if affected == 0 {
			return ErrCustomerNotFound
		}
		return nil
	})
}

func (c *catalogCommandsImpl) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		affected, err := tx.Customers().Delete(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return ErrCustomerInUse
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if affected == 0 {
			return ErrCustomerNotFound
		}
		return nil
	})
}
