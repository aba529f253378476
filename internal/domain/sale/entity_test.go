//go:build unit

package sale_test

import (
	"testing"
	"time"

	"maspatas/internal/domain/sale"
	"maspatas/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSale(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewSaleBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, sale.StatusPending, actual.Status())
		assert.Nil(t, actual.PaymentMethod())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("total derives from items, not the caller", func(t *testing.T) {
		actual, err := builder.NewSaleBuilder().With(func(b *builder.SaleBuilder) {
			b.Items = []builder.SaleItemSpec{
				{ProductID: uuid.New(), Quantity: 2, UnitPriceCents: 1000},
				{ProductID: uuid.New(), Quantity: 1, UnitPriceCents: 550},
			}
		}).BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, int64(2550), actual.Total().Cents())
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		actual, err := sale.NewSale(nil, nil, time.Now())
		require.Nil(t, actual)
		require.ErrorIs(t, err, sale.ErrNoItems)
	})

	t.Run("nil customer means walk-in", func(t *testing.T) {
		actual, err := builder.NewSaleBuilder().With(func(b *builder.SaleBuilder) {
			b.CustomerID = nil
		}).BuildDomain()
		require.NoError(t, err)
		assert.Nil(t, actual.CustomerID())
	})
}

func TestSale_Pay(t *testing.T) {
	now := time.Now()

	newPendingSale := func(t *testing.T) *sale.Sale {
		t.Helper()
		s, err := builder.NewSaleBuilder().With(func(b *builder.SaleBuilder) {
			b.Items = []builder.SaleItemSpec{
				{ProductID: uuid.New(), Quantity: 2, UnitPriceCents: 1000},
			}
		}).BuildDomain()
		require.NoError(t, err)
		return s
	}

	t.Run("pending sale accepts exact payment", func(t *testing.T) {
		s := newPendingSale(t)

		err := s.Pay(sale.PaymentCash, sale.NewMoney(2000), now)
		require.NoError(t, err)

		assert.Equal(t, sale.StatusPaid, s.Status())
		require.NotNil(t, s.PaymentMethod())
		assert.Equal(t, sale.PaymentCash, *s.PaymentMethod())
	})

	t.Run("amount mismatch is rejected", func(t *testing.T) {
		s := newPendingSale(t)

		err := s.Pay(sale.PaymentCard, sale.NewMoney(1999), now)
		require.ErrorIs(t, err, sale.ErrAmountMismatch)
		assert.Equal(t, sale.StatusPending, s.Status())
	})

	t.Run("invalid method is rejected", func(t *testing.T) {
		s := newPendingSale(t)

		err := s.Pay(sale.PaymentMethod("iou"), sale.NewMoney(2000), now)
		require.ErrorIs(t, err, sale.ErrInvalidPaymentMethod)
	})

	t.Run("paid sale rejects a second payment", func(t *testing.T) {
		s := newPendingSale(t)
		require.NoError(t, s.Pay(sale.PaymentCash, sale.NewMoney(2000), now))

		err := s.Pay(sale.PaymentCash, sale.NewMoney(2000), now)
		require.ErrorIs(t, err, sale.ErrSaleFinalized)
	})

	t.Run("cancelled sale rejects payment", func(t *testing.T) {
		s := newPendingSale(t)
		require.NoError(t, s.Cancel(now))

		err := s.Pay(sale.PaymentCash, sale.NewMoney(2000), now)
		require.ErrorIs(t, err, sale.ErrSaleFinalized)
	})
}

func TestSale_Cancel(t *testing.T) {
	now := time.Now()

	t.Run("pending sale can be cancelled", func(t *testing.T) {
		s, err := builder.NewSaleBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, s.Cancel(now))
		assert.Equal(t, sale.StatusCancelled, s.Status())
	})

	t.Run("terminal sale cannot be cancelled again", func(t *testing.T) {
		s, err := builder.NewSaleBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, s.Cancel(now))

		err = s.Cancel(now)
		require.ErrorIs(t, err, sale.ErrSaleFinalized)
	})

	t.Run("paid sale cannot be cancelled", func(t *testing.T) {
		s, err := builder.NewSaleBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, s.Pay(sale.PaymentNequi, s.Total(), now))

		err = s.Cancel(now)
		require.ErrorIs(t, err, sale.ErrSaleFinalized)
	})
}

func TestTotalOf(t *testing.T) {
	itemA, err := sale.NewLineItem(uuid.New(), 3, sale.NewMoney(250))
	require.NoError(t, err)
	itemB, err := sale.NewLineItem(uuid.New(), 1, sale.NewMoney(1999))
	require.NoError(t, err)

	total := sale.TotalOf([]sale.LineItem{itemA, itemB})
	assert.Equal(t, int64(2749), total.Cents())

	t.Run("total does not depend on line order", func(t *testing.T) {
		itemC, err := sale.NewLineItem(uuid.New(), 5, sale.NewMoney(99))
		require.NoError(t, err)

		forward := sale.TotalOf([]sale.LineItem{itemA, itemB, itemC})
		reversed := sale.TotalOf([]sale.LineItem{itemC, itemB, itemA})
		assert.Equal(t, forward.Cents(), reversed.Cents())
	})
}
