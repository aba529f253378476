//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"maspatas/internal/pkg/clock"
	"maspatas/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceCommands_PurgeExpiredRequestIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes rows past their ttl", func(t *testing.T) {
		env := newSaleCommandsEnv(t)
		uc := commands.NewMaintenanceCommands(env.uow, clock.NewMockClock(fixedNow))

		env.idempotency.EXPECT().DeleteExpired(ctx, nil, fixedNow).Return(int64(3), nil)

		purged, err := uc.PurgeExpiredRequestIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), purged)
	})

	t.Run("nothing to purge", func(t *testing.T) {
		env := newSaleCommandsEnv(t)
		uc := commands.NewMaintenanceCommands(env.uow, clock.NewMockClock(fixedNow))

		env.idempotency.EXPECT().DeleteExpired(ctx, nil, fixedNow).Return(int64(0), nil)

		purged, err := uc.PurgeExpiredRequestIDs(ctx)
		require.NoError(t, err)
		assert.Zero(t, purged)
	})

	t.Run("database failure is marked", func(t *testing.T) {
		env := newSaleCommandsEnv(t)
		uc := commands.NewMaintenanceCommands(env.uow, clock.NewMockClock(fixedNow))

		env.idempotency.EXPECT().DeleteExpired(ctx, nil, fixedNow).Return(int64(0), errors.New("db down"))

		_, err := uc.PurgeExpiredRequestIDs(ctx)
		assert.ErrorIs(t, err, commands.ErrDatabaseOperationFailed)
	})
}
