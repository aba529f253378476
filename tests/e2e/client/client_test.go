//go:build e2e

package client_test

import (
	"net/http/httptest"
	"testing"

	"maspatas/internal/client"
	"maspatas/internal/domain/sale"
	"maspatas/internal/domain/user"
	"maspatas/tests/common/dbtest"
	"maspatas/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Runs the desktop-facing client against the real HTTP stack instead of a
// canned test server.
type clientSuite struct {
	e2e.SharedSuite

	server    *httptest.Server
	productID uuid.UUID
}

func TestClientSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(clientSuite))
}

func (s *clientSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.server = httptest.NewServer(s.Router)
}

func (s *clientSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *clientSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	t := s.T()
	dbtest.CreateTestUser(t, s.DB, "seller", string(user.RoleSeller))
	s.productID = dbtest.CreateTestProduct(t, s.DB, "Cat litter 5kg", 1299, 20)
	dbtest.CreateTestCustomer(t, s.DB, "Ana Torres")
}

func (s *clientSuite) loggedInGateway() *client.Gateway {
	t := s.T()
	ctx := t.Context()

	gateway := client.NewGateway(s.server.URL)
	_, err := gateway.Login(ctx, "seller", dbtest.TestPassword)
	require.NoError(t, err)
	return gateway
}

func (s *clientSuite) TestSellThroughClient() {
	s.Run("draft to paid sale in one gesture", func() {
		t := s.T()
		ctx := t.Context()

		gateway := s.loggedInGateway()
		catalog := client.NewCatalogCache(gateway)
		require.NoError(t, catalog.Load(ctx))

		// The catalog snapshot supplies the default unit price.
		draft := sale.NewDraft()
		require.NoError(t, draft.SetLineProduct(0, s.productID, catalog))
		require.NoError(t, draft.SetLineField(0, sale.FieldQuantity, "2"))

		workflow := client.NewWorkflow(gateway)
		outcome, err := workflow.SubmitDraft(ctx, draft, &client.PayNow{Method: "cash"})
		require.NoError(t, err)

		require.True(t, outcome.Paid)
		require.NoError(t, outcome.PaymentErr)
		require.Equal(t, int32(2), outcome.Sale.Status)
		require.Equal(t, 25.98, outcome.Sale.Total)

		require.Equal(t, int64(18), dbtest.ProductStock(t, s.DB, s.productID))
	})

	s.Run("ledger reflects server state", func() {
		t := s.T()
		ctx := t.Context()

		gateway := s.loggedInGateway()
		catalog := client.NewCatalogCache(gateway)
		require.NoError(t, catalog.Load(ctx))

		draft := sale.NewDraft()
		require.NoError(t, draft.SetLineProduct(0, s.productID, catalog))
		require.NoError(t, draft.SetLineField(0, sale.FieldQuantity, "1"))

		workflow := client.NewWorkflow(gateway)
		pending, err := workflow.SubmitDraft(ctx, draft, nil)
		require.NoError(t, err)
		require.False(t, pending.Paid)

		ledger := client.NewLedgerView(gateway, catalog)
		require.NoError(t, ledger.Refresh(ctx))

		require.Equal(t, 1, ledger.SaleCount())
		require.Equal(t, 1, ledger.PendingCount())
		require.Equal(t, 12.99, ledger.TotalRevenue())

		rows := ledger.Rows()
		require.Len(t, rows, 1)
		require.Equal(t, pending.Sale.ID, rows[0].SaleID)
		require.Equal(t, "Walk-in", rows[0].CustomerName)

		items := ledger.ItemRows(pending.Sale.ID)
		require.Len(t, items, 1)
		require.Equal(t, "Cat litter 5kg", items[0].ProductName)
	})

	s.Run("cancel through the workflow restores stock", func() {
		t := s.T()
		ctx := t.Context()

		gateway := s.loggedInGateway()
		catalog := client.NewCatalogCache(gateway)
		require.NoError(t, catalog.Load(ctx))

		draft := sale.NewDraft()
		require.NoError(t, draft.SetLineProduct(0, s.productID, catalog))
		require.NoError(t, draft.SetLineField(0, sale.FieldQuantity, "5"))

		workflow := client.NewWorkflow(gateway)
		pending, err := workflow.SubmitDraft(ctx, draft, nil)
		require.NoError(t, err)
		require.Equal(t, int64(15), dbtest.ProductStock(t, s.DB, s.productID))

		cancelled, err := workflow.CancelSale(ctx, pending.Sale.ID)
		require.NoError(t, err)
		require.Equal(t, int32(3), cancelled.Status)
		require.Equal(t, int64(20), dbtest.ProductStock(t, s.DB, s.productID))
	})
}
