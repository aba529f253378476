package client

import (
	"context"
	"sync"

	"maspatas/internal/domain/sale"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// CatalogCache holds the product and customer catalogs in memory so the
// entry form can resolve names and default prices without a round trip.
// Load replaces both catalogs atomically: a partial failure leaves the
// previous snapshot untouched.
type CatalogCache struct {
	gateway *Gateway

	mu        sync.RWMutex
	products  map[uuid.UUID]Product
	customers map[uuid.UUID]Customer
	loaded    bool
}

func NewCatalogCache(gateway *Gateway) *CatalogCache {
	return &CatalogCache{
		gateway:   gateway,
		products:  map[uuid.UUID]Product{},
		customers: map[uuid.UUID]Customer{},
	}
}

// Load fetches products and customers concurrently. Both must succeed.
func (c *CatalogCache) Load(ctx context.Context) error {
	var (
		products  []Product
		customers []Customer
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = c.gateway.ListProducts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = c.gateway.ListCustomers(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	productIndex := make(map[uuid.UUID]Product, len(products))
	for _, p := range products {
		productIndex[p.ID] = p
	}
	customerIndex := make(map[uuid.UUID]Customer, len(customers))
	for _, cu := range customers {
		customerIndex[cu.ID] = cu
	}

	c.mu.Lock()
	c.products = productIndex
	c.customers = customerIndex
	c.loaded = true
	c.mu.Unlock()
	return nil
}

func (c *CatalogCache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *CatalogCache) Product(id uuid.UUID) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	return p, ok
}

func (c *CatalogCache) Customer(id uuid.UUID) (Customer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cu, ok := c.customers[id]
	return cu, ok
}

func (c *CatalogCache) Products() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	return out
}

func (c *CatalogCache) Customers() []Customer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Customer, 0, len(c.customers))
	for _, cu := range c.customers {
		out = append(out, cu)
	}
	return out
}

// ProductName resolves a display name, falling back to "Unknown product"
// for ids missing from the cache (e.g. deactivated items on old sales).
func (c *CatalogCache) ProductName(id uuid.UUID) string {
	if p, ok := c.Product(id); ok && p.Name != "" {
		return p.Name
	}
	return "Unknown product"
}

// CustomerName resolves a display name. A nil id is a walk-in sale.
func (c *CatalogCache) CustomerName(id *uuid.UUID) string {
	if id == nil {
		return "Walk-in"
	}
	cu, ok := c.Customer(*id)
	if !ok {
		return "Unknown"
	}
	if cu.Name != "" {
		return cu.Name
	}
	if cu.Email != "" {
		return cu.Email
	}
	return cu.ID.String()
}

// ProductPrice implements sale.PriceSource for draft line defaulting.
func (c *CatalogCache) ProductPrice(id uuid.UUID) (sale.Money, bool) {
	p, ok := c.Product(id)
	if !ok {
		return sale.Money{}, false
	}
	return sale.NewMoneyFromFloat(p.Price), true
}
