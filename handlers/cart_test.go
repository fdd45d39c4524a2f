package handlers

import (
	"net/http"
	"reflect"
	"testing"

	"eastside-storefront/catalog"
)

func staticSource() *catalog.Catalog {
	return catalog.NewStatic(catalog.StaticProducts())
}

func TestGetCartStartsEmpty(t *testing.T) {
	client := newCartClient(t, staticSource(), newMemoryOpener())

	w, body := client.do(http.MethodGet, "/api/cart", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body.State != "empty" || body.ItemCount != 0 || body.Subtotal.String() != "0.00" {
		t.Fatalf("unexpected empty cart: %+v", body)
	}
	if body.Items == nil {
		t.Fatal("expected items to be an empty array, not null")
	}
	if client.cookie == nil {
		t.Fatal("expected a session cookie")
	}
}

func TestCartFlow(t *testing.T) {
	client := newCartClient(t, staticSource(), newMemoryOpener())

	client.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": "1"})
	client.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": "1", "quantity": 2})
	_, body := client.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": "2", "boardVariant": "deck-only"})

	if !reflect.DeepEqual(body.keys(), []string{"1-complete", "2-deck-only"}) {
		t.Fatalf("unexpected lines: %v", body.keys())
	}
	if body.ItemCount != 4 || body.Subtotal.String() != "1000.00" || body.State != "populated" {
		t.Fatalf("unexpected totals: %+v", body)
	}

	_, body = client.do(http.MethodPut, "/api/cart/items/1-complete/variant", map[string]any{"boardVariant": "deck-only"})
	if !reflect.DeepEqual(body.keys(), []string{"1-deck-only", "2-deck-only"}) {
		t.Fatalf("expected rename in place, got %v", body.keys())
	}

	_, body = client.do(http.MethodPut, "/api/cart/items/2-deck-only/quantity", map[string]any{"quantity": 2.9})
	if body.Items[1].Quantity != 2 {
		t.Fatalf("expected floored quantity 2, got %d", body.Items[1].Quantity)
	}

	_, body = client.do(http.MethodDelete, "/api/cart/items/1-deck-only", nil)
	if !reflect.DeepEqual(body.keys(), []string{"2-deck-only"}) || body.Subtotal.String() != "350.00" {
		t.Fatalf("unexpected cart after remove: %+v", body)
	}

	_, body = client.do(http.MethodDelete, "/api/cart", nil)
	if body.State != "empty" || len(body.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", body)
	}
}

func TestAddItemAcceptsLegacyDeckVariant(t *testing.T) {
	client := newCartClient(t, staticSource(), newMemoryOpener())

	_, body := client.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": "3", "boardVariant": "deck"})
	if !reflect.DeepEqual(body.keys(), []string{"3-deck-only"}) {
		t.Fatalf("expected deck to map to deck-only, got %v", body.keys())
	}
}

func TestAddItemClampsQuantity(t *testing.T) {
	client := newCartClient(t, staticSource(), newMemoryOpener())

	_, body := client.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": "1", "quantity": 500})
	if body.ItemCount != 99 {
		t.Fatalf("expected clamp to 99, got %d", body.ItemCount)
	}
	_, body = client.do(http.MethodPut, "/api/cart/items/1-complete/quantity", map[string]any{"quantity": -3})
	if body.ItemCount != 1 {
		t.Fatalf("expected clamp to 1, got %d", body.ItemCount)
	}
}

func TestAddItemSumsBeforeClamping(t *testing.T) {
	client := newCartClient(t, staticSource(), newMemoryOpener())

	steps := []struct {
		quantity any
		want     int
	}{
		{5, 5},
		{-2, 3},
		{0, 3},
		{1.7, 4},
		{-2.5, 1},
		{-50, 1},
		{1000, 99},
	}
	for _, step := range steps {
		_, body := client.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": "1", "quantity": step.quantity})
		if len(body.Items) != 1 || body.Items[0].Quantity != step.want {
			t.Fatalf("add %v: expected quantity %d, got %+v", step.quantity, step.want, body.Items)
		}
	}
}

func TestAddItemNewLineClampsNonPositive(t *testing.T) {
	client := newCartClient(t, staticSource(), newMemoryOpener())

	_, body := client.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": "1", "quantity": -4})
	if len(body.Items) != 1 || body.Items[0].Quantity != 1 {
		t.Fatalf("expected new line clamped to 1, got %+v", body.Items)
	}
}

func TestAddItemErrors(t *testing.T) {
	client := newCartClient(t, staticSource(), newMemoryOpener())

	tests := []struct {
		name string
		body any
		want int
	}{
		{"unknown product", map[string]any{"productId": "404"}, http.StatusNotFound},
		{"missing product id", map[string]any{"quantity": 1}, http.StatusBadRequest},
		{"unknown variant", map[string]any{"productId": "1", "boardVariant": "cruiser"}, http.StatusBadRequest},
		{"malformed json", `{"productId":`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := client.do(http.MethodPost, "/api/cart/items", tc.body)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, w.Code, w.Body.String())
			}
		})
	}

	_, body := client.do(http.MethodGet, "/api/cart", nil)
	if body.State != "empty" {
		t.Fatalf("expected rejected adds to leave the cart empty, got %+v", body)
	}
}

func TestUnknownKeysAreNoops(t *testing.T) {
	client := newCartClient(t, staticSource(), newMemoryOpener())
	client.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": "1"})

	for _, req := range []struct {
		method, path string
		body         any
	}{
		{http.MethodPut, "/api/cart/items/zzz-complete/quantity", map[string]any{"quantity": 5}},
		{http.MethodPut, "/api/cart/items/zzz-complete/variant", map[string]any{"boardVariant": "deck-only"}},
		{http.MethodDelete, "/api/cart/items/zzz-complete", nil},
	} {
		w, body := client.do(req.method, req.path, req.body)
		if w.Code != http.StatusOK {
			t.Fatalf("%s %s: expected 200, got %d", req.method, req.path, w.Code)
		}
		if !reflect.DeepEqual(body.keys(), []string{"1-complete"}) || body.ItemCount != 1 {
			t.Fatalf("%s %s changed the cart: %+v", req.method, req.path, body)
		}
	}
}

func TestUpdateVariantRejectsUnknown(t *testing.T) {
	client := newCartClient(t, staticSource(), newMemoryOpener())
	client.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": "1"})

	w, _ := client.do(http.MethodPut, "/api/cart/items/1-complete/variant", map[string]any{"boardVariant": "longboard"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCartSurvivesRegistryRestart(t *testing.T) {
	opener := newMemoryOpener()
	client := newCartClient(t, staticSource(), opener)
	client.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": "5", "quantity": 2})

	// A new router and registry over the same durable slots restores the session's cart.
	restarted := newCartClient(t, staticSource(), opener)
	restarted.cookie = client.cookie

	_, body := restarted.do(http.MethodGet, "/api/cart", nil)
	if !reflect.DeepEqual(body.keys(), []string{"5-complete"}) || body.ItemCount != 2 {
		t.Fatalf("expected restored cart, got %+v", body)
	}
}

func TestCartLinesKeepAddTimeSnapshot(t *testing.T) {
	source := staticSource()
	client := newCartClient(t, source, newMemoryOpener())
	client.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": "1"})

	updated := catalog.StaticProducts()
	updated[0].CompletePrice = 999
	source.Replace(updated)

	_, body := client.do(http.MethodPost, "/api/cart/items", map[string]any{"productId": "1"})
	if body.Subtotal.String() != "550.00" {
		t.Fatalf("expected original price snapshot to be kept, got %s", body.Subtotal)
	}
}
