package commands

import (
	"context"

	"maspatas/internal/pkg/clock"
	"maspatas/internal/pkg/errs"
	"maspatas/internal/usecase/shared"
)

type MaintenanceCommands interface {
	// PurgeExpiredRequestIDs drops idempotency rows past their TTL so the
	// table does not grow without bound. Run periodically.
	PurgeExpiredRequestIDs(ctx context.Context) (int64, error)
}

type maintenanceCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewMaintenanceCommands(uow shared.UnitOfWork, clk clock.Clock) MaintenanceCommands {
	return &maintenanceCommandsImpl{uow: uow, clock: clk}
}

func (c *maintenanceCommandsImpl) PurgeExpiredRequestIDs(ctx context.Context) (int64, error) {
	var purged int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Idempotency().DeleteExpired(ctx, tx.DB(), c.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		purged = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return purged, nil
}
