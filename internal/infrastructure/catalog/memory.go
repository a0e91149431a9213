package catalog

import (
	"sync"

	"github.com/cartcompare/backend/internal/domain"
)

// MemoryCatalog is the in-memory product index for one comparison session.
// It is append-only: products are added while the retailer catalogs load and
// only read afterwards. Products are never mutated after insertion, so
// concurrent read-only scoring from multiple HTTP handlers is safe; callers
// must not interleave Add with reads.
type MemoryCatalog struct {
	mutex        sync.RWMutex
	products     []*domain.Product
	byNormalized map[string][]*domain.Product
	byStore      map[string][]*domain.Product
	storeOrder   []string
}

// NewMemoryCatalog creates an empty catalog index.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		byNormalized: make(map[string][]*domain.Product),
		byStore:      make(map[string][]*domain.Product),
	}
}

// Add appends a product to the flat list, the normalized-name grouping and
// its store bucket. It never fails; a product without a parsed price is
// stored like any other.
func (c *MemoryCatalog) Add(p *domain.Product) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.products = append(c.products, p)
	c.byNormalized[p.NormalizedName] = append(c.byNormalized[p.NormalizedName], p)

	if _, ok := c.byStore[p.Store]; !ok {
		c.storeOrder = append(c.storeOrder, p.Store)
	}
	c.byStore[p.Store] = append(c.byStore[p.Store], p)
}

// All returns every product in insertion order.
func (c *MemoryCatalog) All() []*domain.Product {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	out := make([]*domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByStore returns the products of one store in insertion order. An unknown
// store yields an empty slice, not an error.
func (c *MemoryCatalog) ByStore(store string) []*domain.Product {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	out := make([]*domain.Product, len(c.byStore[store]))
	copy(out, c.byStore[store])
	return out
}

// ByNormalizedName returns the products sharing one exact normalized name.
func (c *MemoryCatalog) ByNormalizedName(name string) []*domain.Product {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	out := make([]*domain.Product, len(c.byNormalized[name]))
	copy(out, c.byNormalized[name])
	return out
}

// Stores returns the store names in the order they first appeared.
func (c *MemoryCatalog) Stores() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	out := make([]string, len(c.storeOrder))
	copy(out, c.storeOrder)
	return out
}

// Len returns the number of products in the catalog.
func (c *MemoryCatalog) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.products)
}
