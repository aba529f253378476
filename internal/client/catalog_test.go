//go:build unit

package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"maspatas/internal/client"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	products      []client.Product
	customers     []client.Customer
	failCustomers atomic.Bool
}

func (f *catalogFixture) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, f.products)
	})
	mux.HandleFunc("/api/customers", func(w http.ResponseWriter, _ *http.Request) {
		if f.failCustomers.Load() {
			writeJSON(t, w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			return
		}
		writeJSON(t, w, http.StatusOK, f.customers)
	})
	return httptest.NewServer(mux)
}

func TestCatalogCache_Load(t *testing.T) {
	ctx := context.Background()

	productID := uuid.New()
	customerID := uuid.New()
	fixture := &catalogFixture{
		products: []client.Product{
			{ID: productID, Name: "Cat litter 5kg", Price: 12.99, Stock: 4, Active: true},
		},
		customers: []client.Customer{
			{ID: customerID, Name: "Ana Torres", Email: "ana@example.com"},
		},
	}

	srv := fixture.server(t)
	defer srv.Close()

	cache := client.NewCatalogCache(client.NewGateway(srv.URL))
	assert.False(t, cache.Loaded())

	require.NoError(t, cache.Load(ctx))
	assert.True(t, cache.Loaded())

	t.Run("lookups hit the snapshot", func(t *testing.T) {
		p, ok := cache.Product(productID)
		require.True(t, ok)
		assert.Equal(t, "Cat litter 5kg", p.Name)

		c, ok := cache.Customer(customerID)
		require.True(t, ok)
		assert.Equal(t, "Ana Torres", c.Name)

		assert.Len(t, cache.Products(), 1)
		assert.Len(t, cache.Customers(), 1)
	})

	t.Run("a failed reload keeps the previous snapshot", func(t *testing.T) {
		fixture.failCustomers.Store(true)
		defer fixture.failCustomers.Store(false)

		err := cache.Load(ctx)
		require.Error(t, err)

		// Both catalogs still answer from the last good load.
		_, ok := cache.Product(productID)
		assert.True(t, ok)
		_, ok = cache.Customer(customerID)
		assert.True(t, ok)
		assert.True(t, cache.Loaded())
	})
}

func TestCatalogCache_DisplayNames(t *testing.T) {
	ctx := context.Background()

	productID := uuid.New()
	namedID := uuid.New()
	emailOnlyID := uuid.New()
	fixture := &catalogFixture{
		products: []client.Product{
			{ID: productID, Name: "Bird seed", Price: 3.50},
		},
		customers: []client.Customer{
			{ID: namedID, Name: "Carlos", Email: "carlos@example.com"},
			{ID: emailOnlyID, Email: "pepe@example.com"},
		},
	}

	srv := fixture.server(t)
	defer srv.Close()

	cache := client.NewCatalogCache(client.NewGateway(srv.URL))
	require.NoError(t, cache.Load(ctx))

	t.Run("product names fall back for unknown ids", func(t *testing.T) {
		assert.Equal(t, "Bird seed", cache.ProductName(productID))
		assert.Equal(t, "Unknown product", cache.ProductName(uuid.New()))
	})

	t.Run("customer names prefer name, then email", func(t *testing.T) {
		assert.Equal(t, "Carlos", cache.CustomerName(&namedID))
		assert.Equal(t, "pepe@example.com", cache.CustomerName(&emailOnlyID))
	})

	t.Run("nil customer is a walk-in", func(t *testing.T) {
		assert.Equal(t, "Walk-in", cache.CustomerName(nil))
	})

	t.Run("unknown customer id", func(t *testing.T) {
		unknown := uuid.New()
		assert.Equal(t, "Unknown", cache.CustomerName(&unknown))
	})
}

func TestCatalogCache_ProductPrice(t *testing.T) {
	ctx := context.Background()

	productID := uuid.New()
	fixture := &catalogFixture{
		products: []client.Product{{ID: productID, Name: "Leash", Price: 19.99}},
	}

	srv := fixture.server(t)
	defer srv.Close()

	cache := client.NewCatalogCache(client.NewGateway(srv.URL))
	require.NoError(t, cache.Load(ctx))

	price, ok := cache.ProductPrice(productID)
	require.True(t, ok)
	assert.Equal(t, int64(1999), price.Cents())

	_, ok = cache.ProductPrice(uuid.New())
	assert.False(t, ok)
}
