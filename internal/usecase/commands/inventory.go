package commands

import (
	"context"
	"strings"

	"maspatas/internal/infra"
	"maspatas/internal/pkg/errs"
	"maspatas/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidMovement = errs.New("invalid inventory movement")

type AdjustStockInput struct {
	ProductID uuid.UUID
	Type      string // "IN" or "OUT"
	Quantity  int64
	Reason    string
}

type InventoryCommands interface {
	// AdjustStock records a manual stock correction outside the sales flow,
	// e.g. receiving a delivery or writing off damaged goods.
	AdjustStock(ctx context.Context, input AdjustStockInput, userID uuid.UUID) (int64, error)
}

type inventoryCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewInventoryCommands(uow shared.UnitOfWork) InventoryCommands {
	return &inventoryCommandsImpl{uow: uow}
}

func (c *inventoryCommandsImpl) AdjustStock(ctx context.Context, input AdjustStockInput, userID uuid.UUID) (int64, error) {
	movementType := strings.ToUpper(input.Type)
	if movementType != "IN" && movementType != "OUT" {
		return 0, ErrInvalidMovement
	}
	if input.Quantity <= 0 {
		return 0, ErrInvalidMovement
	}

	delta := input.Quantity
	if movementType == "OUT" {
		delta = -delta
	}

	var balance int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().ProductByID(ctx, input.ProductID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrProductNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		b, err := tx.Inventory().AdjustStock(ctx, tx.DB(), input.ProductID, delta)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInsufficientStock
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		balance = b

		_, err = tx.Inventory().RecordMovement(ctx, tx.DB(), shared.MovementRecord{
			ProductID:    input.ProductID,
			Type:         movementType,
			Quantity:     input.Quantity,
			BalanceAfter: b,
			Reason:       input.Reason,
			UserID:       &userID,
		})
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return balance, nil
}
