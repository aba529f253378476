//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"maspatas/internal/infra"
	"maspatas/internal/pkg/clock"
	"maspatas/internal/usecase/commands"
	"maspatas/internal/usecase/shared"
	"maspatas/tests/common/builder"
	queriesmock "maspatas/tests/mock/queries"
	sharedmock "maspatas/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type saleCommandsEnv struct {
	uow         *sharedmock.MockUnitOfWork
	tx          *sharedmock.MockTx
	reads       *sharedmock.MockCommandReads
	sales       *sharedmock.MockSaleRepository
	idempotency *sharedmock.MockIdempotencyRepository
	inventory   *sharedmock.MockInventoryRepository
	saleQueries *queriesmock.MockSaleQueries
	uc          commands.SaleCommands
}

func newSaleCommandsEnv(t *testing.T) *saleCommandsEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	env := &saleCommandsEnv{
		uow:         sharedmock.NewMockUnitOfWork(ctrl),
		tx:          sharedmock.NewMockTx(ctrl),
		reads:       sharedmock.NewMockCommandReads(ctrl),
		sales:       sharedmock.NewMockSaleRepository(ctrl),
		idempotency: sharedmock.NewMockIdempotencyRepository(ctrl),
		inventory:   sharedmock.NewMockInventoryRepository(ctrl),
		saleQueries: queriesmock.NewMockSaleQueries(ctrl),
	}

	env.tx.EXPECT().DB().Return(nil).AnyTimes()
	env.tx.EXPECT().Reads().Return(env.reads).AnyTimes()
	env.tx.EXPECT().Sales().Return(env.sales).AnyTimes()
	env.tx.EXPECT().Idempotency().Return(env.idempotency).AnyTimes()
	env.tx.EXPECT().Inventory().Return(env.inventory).AnyTimes()

	env.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, env.tx)
		},
	).AnyTimes()

	env.uc = commands.NewSaleUseCase(env.uow, env.saleQueries, clock.NewMockClock(fixedNow))
	return env
}

// hashOf mirrors the request fingerprint stored with an idempotency key.
func hashOf(payload any) string {
	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func activeProduct(id uuid.UUID, stock int64) *shared.ProductSnapshot {
	return &shared.ProductSnapshot{ID: id, Name: "Dog food 2kg", PriceCents: 1500, Stock: stock, Active: true}
}

func TestSaleCommands_Sell(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	requestID := uuid.New()

	t.Run("creates a pending sale and moves stock out", func(t *testing.T) {
		env := newSaleCommandsEnv(t)

		b := builder.NewSaleBuilder().With(func(b *builder.SaleBuilder) {
			b.Items = []builder.SaleItemSpec{
				{ProductID: uuid.New(), Quantity: 2, UnitPriceCents: 1000},
			}
		})
		input := b.BuildSellInput()
		productID := input.Items[0].ProductID
		saleID := uuid.New()

		env.idempotency.EXPECT().
			TryInsert(ctx, nil, requestID, userID, "POST /sales/sell", hashOf(input), fixedNow.Add(24*time.Hour)).
			Return(true, nil)
		env.reads.EXPECT().CustomerByID(ctx, *input.CustomerID).Return(&shared.CustomerSnapshot{ID: *input.CustomerID}, nil)
		env.reads.EXPECT().ProductByID(ctx, productID).Return(activeProduct(productID, 10), nil)
		env.sales.EXPECT().Create(ctx, nil, gomock.Any()).Return(saleID, nil)
		env.inventory.EXPECT().AdjustStock(ctx, nil, productID, int64(-2)).Return(int64(8), nil)
		env.inventory.EXPECT().RecordMovement(ctx, nil, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ any, m shared.MovementRecord) (uuid.UUID, error) {
				assert.Equal(t, "OUT", m.Type)
				assert.Equal(t, int64(2), m.Quantity)
				assert.Equal(t, int64(8), m.BalanceAfter)
				assert.Equal(t, "sale", m.Reason)
				require.NotNil(t, m.SaleID)
				assert.Equal(t, saleID, *m.SaleID)
				return uuid.New(), nil
			})
		env.idempotency.EXPECT().UpdateStatusCompleted(ctx, nil, requestID, userID, saleID).Return(nil)
		env.saleQueries.EXPECT().GetByID(ctx, saleID).Return(b.BuildView(saleID, "pending"), nil)

		result, err := env.uc.Sell(ctx, input, userID, requestID)
		require.NoError(t, err)
		assert.False(t, result.IsReplayed)
		assert.Equal(t, saleID, result.Sale.ID)
		assert.Equal(t, "pending", result.Sale.Status)
	})

	t.Run("replays a completed request without touching the ledger", func(t *testing.T) {
		env := newSaleCommandsEnv(t)

		b := builder.NewSaleBuilder()
		input := b.BuildSellInput()
		storedSaleID := uuid.New()

		env.idempotency.EXPECT().
			TryInsert(ctx, nil, requestID, userID, "POST /sales/sell", hashOf(input), gomock.Any()).
			Return(false, nil)
		env.reads.EXPECT().IdempotencyByKey(ctx, requestID, userID).Return(&shared.IdempotencyRecord{
			Key:          requestID,
			UserID:       userID,
			Status:       "completed",
			RequestHash:  hashOf(input),
			ResultSaleID: &storedSaleID,
			ExpiresAt:    fixedNow.Add(time.Hour),
		}, nil)
		env.saleQueries.EXPECT().GetByID(ctx, storedSaleID).Return(b.BuildView(storedSaleID, "pending"), nil)

		result, err := env.uc.Sell(ctx, input, userID, requestID)
		require.NoError(t, err)
		assert.True(t, result.IsReplayed)
		assert.Equal(t, storedSaleID, result.Sale.ID)
	})

	t.Run("an expired request id is reclaimed as a fresh request", func(t *testing.T) {
		env := newSaleCommandsEnv(t)

		b := builder.NewSaleBuilder()
		input := b.BuildSellInput()
		productID := input.Items[0].ProductID
		staleSaleID := uuid.New()
		saleID := uuid.New()

		env.idempotency.EXPECT().
			TryInsert(ctx, nil, requestID, userID, "POST /sales/sell", hashOf(input), fixedNow.Add(24*time.Hour)).
			Return(false, nil)
		env.reads.EXPECT().IdempotencyByKey(ctx, requestID, userID).Return(&shared.IdempotencyRecord{
			Status:       "completed",
			RequestHash:  hashOf(input),
			ResultSaleID: &staleSaleID,
			ExpiresAt:    fixedNow.Add(-time.Minute),
		}, nil)
		env.idempotency.EXPECT().DeleteExpired(ctx, nil, fixedNow).Return(int64(1), nil)
		env.idempotency.EXPECT().
			TryInsert(ctx, nil, requestID, userID, "POST /sales/sell", hashOf(input), fixedNow.Add(24*time.Hour)).
			Return(true, nil)
		env.reads.EXPECT().CustomerByID(ctx, *input.CustomerID).Return(&shared.CustomerSnapshot{ID: *input.CustomerID}, nil)
		env.reads.EXPECT().ProductByID(ctx, productID).Return(activeProduct(productID, 10), nil)
		env.sales.EXPECT().Create(ctx, nil, gomock.Any()).Return(saleID, nil)
		env.inventory.EXPECT().AdjustStock(ctx, nil, productID, int64(-2)).Return(int64(8), nil)
		env.inventory.EXPECT().RecordMovement(ctx, nil, gomock.Any()).Return(uuid.New(), nil)
		env.idempotency.EXPECT().UpdateStatusCompleted(ctx, nil, requestID, userID, saleID).Return(nil)
		env.saleQueries.EXPECT().GetByID(ctx, saleID).Return(b.BuildView(saleID, "pending"), nil)

		result, err := env.uc.Sell(ctx, input, userID, requestID)
		require.NoError(t, err)
		assert.False(t, result.IsReplayed)
		assert.Equal(t, saleID, result.Sale.ID)
		assert.NotEqual(t, staleSaleID, result.Sale.ID)
	})

	t.Run("same request id with a different payload is rejected", func(t *testing.T) {
		env := newSaleCommandsEnv(t)

		input := builder.NewSaleBuilder().BuildSellInput()
		storedSaleID := uuid.New()

		env.idempotency.EXPECT().
			TryInsert(ctx, nil, requestID, userID, "POST /sales/sell", hashOf(input), gomock.Any()).
			Return(false, nil)
		env.reads.EXPECT().IdempotencyByKey(ctx, requestID, userID).Return(&shared.IdempotencyRecord{
			Status:       "completed",
			RequestHash:  "a-different-fingerprint",
			ResultSaleID: &storedSaleID,
			ExpiresAt:    fixedNow.Add(time.Hour),
		}, nil)

		_, err := env.uc.Sell(ctx, input, userID, requestID)
		require.ErrorIs(t, err, commands.ErrDuplicateRequest)
	})

	t.Run("request still processing reports in-progress", func(t *testing.T) {
		env := newSaleCommandsEnv(t)

		input := builder.NewSaleBuilder().BuildSellInput()

		env.idempotency.EXPECT().
			TryInsert(ctx, nil, requestID, userID, "POST /sales/sell", hashOf(input), gomock.Any()).
			Return(false, nil)
		env.reads.EXPECT().IdempotencyByKey(ctx, requestID, userID).Return(&shared.IdempotencyRecord{
			Status:      "processing",
			RequestHash: hashOf(input),
			ExpiresAt:   fixedNow.Add(time.Hour),
		}, nil)

		_, err := env.uc.Sell(ctx, input, userID, requestID)
		require.ErrorIs(t, err, commands.ErrRequestInProgress)
	})

	t.Run("inactive product aborts the sale", func(t *testing.T) {
		env := newSaleCommandsEnv(t)

		input := builder.NewSaleBuilder().BuildSellInput()
		productID := input.Items[0].ProductID

		env.idempotency.EXPECT().TryInsert(ctx, nil, requestID, userID, "POST /sales/sell", hashOf(input), gomock.Any()).Return(true, nil)
		env.reads.EXPECT().CustomerByID(ctx, *input.CustomerID).Return(&shared.CustomerSnapshot{ID: *input.CustomerID}, nil)
		env.reads.EXPECT().ProductByID(ctx, productID).Return(&shared.ProductSnapshot{ID: productID, Active: false}, nil)

		_, err := env.uc.Sell(ctx, input, userID, requestID)
		require.ErrorIs(t, err, commands.ErrProductInactive)
	})

	t.Run("unknown customer aborts the sale", func(t *testing.T) {
		env := newSaleCommandsEnv(t)

		input := builder.NewSaleBuilder().BuildSellInput()

		env.idempotency.EXPECT().TryInsert(ctx, nil, requestID, userID, "POST /sales/sell", hashOf(input), gomock.Any()).Return(true, nil)
		env.reads.EXPECT().CustomerByID(ctx, *input.CustomerID).
			Return(nil, infra.WrapRepoErr("customer not found", errors.New("no rows"), infra.KindNotFound))

		_, err := env.uc.Sell(ctx, input, userID, requestID)
		require.ErrorIs(t, err, commands.ErrCustomerNotFound)
	})

	t.Run("insufficient stock surfaces as a conflict", func(t *testing.T) {
		env := newSaleCommandsEnv(t)

		input := builder.NewSaleBuilder().BuildSellInput()
		productID := input.Items[0].ProductID

		env.idempotency.EXPECT().TryInsert(ctx, nil, requestID, userID, "POST /sales/sell", hashOf(input), gomock.Any()).Return(true, nil)
		env.reads.EXPECT().CustomerByID(ctx, *input.CustomerID).Return(&shared.CustomerSnapshot{ID: *input.CustomerID}, nil)
		env.reads.EXPECT().ProductByID(ctx, productID).Return(activeProduct(productID, 1), nil)
		env.sales.EXPECT().Create(ctx, nil, gomock.Any()).Return(uuid.New(), nil)
		env.inventory.EXPECT().AdjustStock(ctx, nil, productID, gomock.Any()).
			Return(int64(0), infra.WrapRepoErr("stock would go negative", errors.New("no rows"), infra.KindConflict))

		_, err := env.uc.Sell(ctx, input, userID, requestID)
		require.ErrorIs(t, err, commands.ErrInsufficientStock)
	})

	t.Run("invalid line item fails before any transaction", func(t *testing.T) {
		env := newSaleCommandsEnv(t)

		input := builder.NewSaleBuilder().With(func(b *builder.SaleBuilder) {
			b.Items = []builder.SaleItemSpec{{ProductID: uuid.New(), Quantity: 0, UnitPriceCents: 100}}
		}).BuildSellInput()

		_, err := env.uc.Sell(ctx, input, userID, requestID)
		require.ErrorIs(t, err, commands.ErrDomainValidation)
	})
}

func TestSaleCommands_Pay(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	requestID := uuid.New()
	saleID := uuid.New()

	payHash := func(input commands.PayInput) string {
		return hashOf(struct {
			SaleID uuid.UUID `json:"sale_id"`
			commands.PayInput
		}{saleID, input})
	}

	pendingSnapshot := func(totalCents int64) *shared.SaleSnapshot {
		return &shared.SaleSnapshot{ID: saleID, Status: "pending", TotalCents: totalCents}
	}

	t.Run("exact payment marks the sale paid", func(t *testing.T) {
		env := newSaleCommandsEnv(t)
		input := commands.PayInput{Method: "cash", AmountCents: 2000}

		env.idempotency.EXPECT().TryInsert(ctx, nil, requestID, userID, "POST /sales/pay", payHash(input), gomock.Any()).Return(true, nil)
		env.reads.EXPECT().SaleByID(ctx, saleID).Return(pendingSnapshot(2000), nil)
		env.sales.EXPECT().MarkPaid(ctx, nil, saleID, gomock.Any()).Return(int64(1), nil)
		env.idempotency.EXPECT().UpdateStatusCompleted(ctx, nil, requestID, userID, saleID).Return(nil)
		env.saleQueries.EXPECT().GetByID(ctx, saleID).Return(builder.NewSaleBuilder().BuildView(saleID, "paid"), nil)

		result, err := env.uc.Pay(ctx, saleID, input, userID, requestID)
		require.NoError(t, err)
		assert.False(t, result.IsReplayed)
		assert.Equal(t, "paid", result.Sale.Status)
	})

	t.Run("method casing is tolerated", func(t *testing.T) {
		env := newSaleCommandsEnv(t)
		input := commands.PayInput{Method: "Nequi", AmountCents: 2000}

		env.idempotency.EXPECT().TryInsert(ctx, nil, requestID, userID, "POST /sales/pay", payHash(input), gomock.Any()).Return(true, nil)
		env.reads.EXPECT().SaleByID(ctx, saleID).Return(pendingSnapshot(2000), nil)
		env.sales.EXPECT().MarkPaid(ctx, nil, saleID, gomock.Any()).Return(int64(1), nil)
		env.idempotency.EXPECT().UpdateStatusCompleted(ctx, nil, requestID, userID, saleID).Return(nil)
		env.saleQueries.EXPECT().GetByID(ctx, saleID).Return(builder.NewSaleBuilder().BuildView(saleID, "paid"), nil)

		_, err := env.uc.Pay(ctx, saleID, input, userID, requestID)
		require.NoError(t, err)
	})

	t.Run("amount mismatch is rejected", func(t *testing.T) {
		env := newSaleCommandsEnv(t)
		input := commands.PayInput{Method: "cash", AmountCents: 1500}

		env.idempotency.EXPECT().TryInsert(ctx, nil, requestID, userID, "POST /sales/pay", payHash(input), gomock.Any()).Return(true, nil)
		env.reads.EXPECT().SaleByID(ctx, saleID).Return(pendingSnapshot(2000), nil)

		_, err := env.uc.Pay(ctx, saleID, input, userID, requestID)
		require.ErrorIs(t, err, commands.ErrAmountMismatch)
	})

	t.Run("terminal sale cannot be paid", func(t *testing.T) {
		env := newSaleCommandsEnv(t)
		input := commands.PayInput{Method: "cash", AmountCents: 2000}

		env.idempotency.EXPECT().TryInsert(ctx, nil, requestID, userID, "POST /sales/pay", payHash(input), gomock.Any()).Return(true, nil)
		env.reads.EXPECT().SaleByID(ctx, saleID).Return(&shared.SaleSnapshot{ID: saleID, Status: "cancelled", TotalCents: 2000}, nil)

		_, err := env.uc.Pay(ctx, saleID, input, userID, requestID)
		require.ErrorIs(t, err, commands.ErrSaleAlreadyFinal)
	})

	t.Run("losing the finalization race reports already final", func(t *testing.T) {
		env := newSaleCommandsEnv(t)
		input := commands.PayInput{Method: "cash", AmountCents: 2000}

		env.idempotency.EXPECT().TryInsert(ctx, nil, requestID, userID, "POST /sales/pay", payHash(input), gomock.Any()).Return(true, nil)
		env.reads.EXPECT().SaleByID(ctx, saleID).Return(pendingSnapshot(2000), nil)
		env.sales.EXPECT().MarkPaid(ctx, nil, saleID, gomock.Any()).Return(int64(0), nil)

		_, err := env.uc.Pay(ctx, saleID, input, userID, requestID)
		require.ErrorIs(t, err, commands.ErrSaleAlreadyFinal)
	})

	t.Run("unknown payment method fails before any transaction", func(t *testing.T) {
		env := newSaleCommandsEnv(t)

		_, err := env.uc.Pay(ctx, saleID, commands.PayInput{Method: "barter", AmountCents: 2000}, userID, requestID)
		require.ErrorIs(t, err, commands.ErrInvalidPaymentMethod)
	})

	t.Run("unknown sale reports not found", func(t *testing.T) {
		env := newSaleCommandsEnv(t)
		input := commands.PayInput{Method: "cash", AmountCents: 2000}

		env.idempotency.EXPECT().TryInsert(ctx, nil, requestID, userID, "POST /sales/pay", payHash(input), gomock.Any()).Return(true, nil)
		env.reads.EXPECT().SaleByID(ctx, saleID).
			Return(nil, infra.WrapRepoErr("sale not found", errors.New("no rows"), infra.KindNotFound))

		_, err := env.uc.Pay(ctx, saleID, input, userID, requestID)
		require.ErrorIs(t, err, commands.ErrSaleNotFound)
	})
}

func TestSaleCommands_Cancel(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	requestID := uuid.New()
	saleID := uuid.New()

	cancelHash := hashOf(struct {
		SaleID uuid.UUID `json:"sale_id"`
	}{saleID})

	t.Run("cancelling returns reserved units to stock", func(t *testing.T) {
		env := newSaleCommandsEnv(t)
		productID := uuid.New()

		env.idempotency.EXPECT().TryInsert(ctx, nil, requestID, userID, "POST /sales/cancel", cancelHash, gomock.Any()).Return(true, nil)
		env.reads.EXPECT().SaleByID(ctx, saleID).Return(&shared.SaleSnapshot{
			ID:         saleID,
			Status:     "pending",
			TotalCents: 3000,
			Items: []shared.SaleItemSnapshot{
				{ProductID: productID, Quantity: 3, UnitPriceCents: 1000},
			},
		}, nil)
		env.sales.EXPECT().MarkCancelled(ctx, nil, saleID).Return(int64(1), nil)
		env.inventory.EXPECT().AdjustStock(ctx, nil, productID, int64(3)).Return(int64(10), nil)
		env.inventory.EXPECT().RecordMovement(ctx, nil, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ any, m shared.MovementRecord) (uuid.UUID, error) {
				assert.Equal(t, "IN", m.Type)
				assert.Equal(t, int64(3), m.Quantity)
				assert.Equal(t, "sale cancelled", m.Reason)
				return uuid.New(), nil
			})
		env.idempotency.EXPECT().UpdateStatusCompleted(ctx, nil, requestID, userID, saleID).Return(nil)
		env.saleQueries.EXPECT().GetByID(ctx, saleID).Return(builder.NewSaleBuilder().BuildView(saleID, "cancelled"), nil)

		result, err := env.uc.Cancel(ctx, saleID, userID, requestID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", result.Sale.Status)
	})

	t.Run("terminal sale cannot be cancelled", func(t *testing.T) {
		env := newSaleCommandsEnv(t)

		env.idempotency.EXPECT().TryInsert(ctx, nil, requestID, userID, "POST /sales/cancel", cancelHash, gomock.Any()).Return(true, nil)
		env.reads.EXPECT().SaleByID(ctx, saleID).Return(&shared.SaleSnapshot{ID: saleID, Status: "paid", TotalCents: 3000}, nil)

		_, err := env.uc.Cancel(ctx, saleID, userID, requestID)
		require.ErrorIs(t, err, commands.ErrSaleAlreadyFinal)
	})

	t.Run("replayed cancel returns the stored outcome", func(t *testing.T) {
		env := newSaleCommandsEnv(t)

		env.idempotency.EXPECT().TryInsert(ctx, nil, requestID, userID, "POST /sales/cancel", cancelHash, gomock.Any()).Return(false, nil)
		env.reads.EXPECT().IdempotencyByKey(ctx, requestID, userID).Return(&shared.IdempotencyRecord{
			Status:       "completed",
			RequestHash:  cancelHash,
			ResultSaleID: &saleID,
			ExpiresAt:    fixedNow.Add(time.Hour),
		}, nil)
		env.saleQueries.EXPECT().GetByID(ctx, saleID).Return(builder.NewSaleBuilder().BuildView(saleID, "cancelled"), nil)

		result, err := env.uc.Cancel(ctx, saleID, userID, requestID)
		require.NoError(t, err)
		assert.True(t, result.IsReplayed)
	})
}
