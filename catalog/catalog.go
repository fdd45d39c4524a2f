package catalog

import (
	"errors"
	"sync"

	"eastside-storefront/models"
)

// ErrUnavailable is reported when the products collection could not be read.
var ErrUnavailable = errors.New("unable to load products")

// Source is the read side of the product catalog.
type Source interface {
	Products() []models.Product
	ProductBySlug(slug string) (models.Product, bool)
	ProductByID(id string) (models.Product, bool)
	// Ready reports whether at least one snapshot has been received.
	Ready() bool
	// Err is the most recent listener error, nil after a successful snapshot.
	Err() error
}

// Catalog holds the latest product set. Readers always get copies, so a later
// snapshot never changes data a caller already holds.
type Catalog struct {
	mu       sync.RWMutex
	products []models.Product
	bySlug   map[string]int
	byID     map[string]int
	ready    bool
	err      error
}

func New() *Catalog {
	return &Catalog{bySlug: map[string]int{}, byID: map[string]int{}}
}

// NewStatic returns a ready catalog holding products.
func NewStatic(products []models.Product) *Catalog {
	c := New()
	c.Replace(products)
	return c
}

// Replace swaps in a full snapshot and clears any previous error.
func (c *Catalog) Replace(products []models.Product) {
	next := make([]models.Product, len(products))
	copy(next, products)
	bySlug := make(map[string]int, len(next))
	byID := make(map[string]int, len(next))
	for i, p := range next {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = i
		}
		if p.Slug != "" {
			if _, dup := bySlug[p.Slug]; !dup {
				bySlug[p.Slug] = i
			}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = next
	c.bySlug = bySlug
	c.byID = byID
	c.ready = true
	c.err = nil
}

// Fail records a listener error. The last good snapshot is kept.
func (c *Catalog) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *Catalog) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, len(c.products))
	for i, p := range c.products {
		out[i] = clone(p)
	}
	return out
}

func (c *Catalog) ProductBySlug(slug string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.bySlug[slug]
	if !ok {
		return models.Product{}, false
	}
	return clone(c.products[i]), true
}

func (c *Catalog) ProductByID(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return clone(c.products[i]), true
}

func (c *Catalog) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

func (c *Catalog) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func clone(p models.Product) models.Product {
	p.Images = append([]string(nil), p.Images...)
	p.Features = append([]string(nil), p.Features...)
	return p
}
