package catalog

import (
	"errors"
	"testing"

	"eastside-storefront/models"
)

func TestStaticCatalogLookups(t *testing.T) {
	c := NewStatic(StaticProducts())

	if !c.Ready() {
		t.Fatal("expected static catalog to be ready")
	}
	if got := len(c.Products()); got != 5 {
		t.Fatalf("expected 5 products, got %d", got)
	}

	p, ok := c.ProductBySlug("the-kahala")
	if !ok || p.ID != "1" {
		t.Fatalf("expected the-kahala to resolve to id 1, got %+v ok=%v", p, ok)
	}
	if p.Components.Trucks == "" {
		t.Fatal("expected the flagship board to list trucks")
	}

	p, ok = c.ProductByID("4")
	if !ok || p.Slug != "pau" {
		t.Fatalf("expected id 4 to resolve to pau, got %+v ok=%v", p, ok)
	}

	if _, ok := c.ProductBySlug("missing"); ok {
		t.Fatal("expected unknown slug to miss")
	}
}

func TestProductsReturnsCopies(t *testing.T) {
	c := NewStatic(StaticProducts())

	products := c.Products()
	products[0].Name = "Changed"
	products[0].Images[0] = "/changed.jpeg"

	p, _ := c.ProductByID(products[0].ID)
	if p.Name == "Changed" || p.Images[0] == "/changed.jpeg" {
		t.Fatalf("catalog state leaked through returned slice: %+v", p)
	}
}

func TestFailKeepsLastSnapshot(t *testing.T) {
	c := NewStatic([]models.Product{{ID: "a", Slug: "a"}})
	c.Fail(ErrUnavailable)

	if !errors.Is(c.Err(), ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", c.Err())
	}
	if len(c.Products()) != 1 {
		t.Fatal("expected last good snapshot to remain")
	}

	c.Replace(nil)
	if c.Err() != nil {
		t.Fatalf("expected Replace to clear the error, got %v", c.Err())
	}
}

func TestNewCatalogNotReady(t *testing.T) {
	c := New()
	if c.Ready() {
		t.Fatal("expected empty catalog to not be ready")
	}
	if len(c.Products()) != 0 {
		t.Fatal("expected no products")
	}
}
