package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"eastside-storefront/cart"
	"eastside-storefront/catalog"
	"eastside-storefront/firebase"
	"eastside-storefront/logger"
	"eastside-storefront/middleware"

	"github.com/gin-gonic/gin"
)

const (
	testStoreID = "eastside"
	testSecret  = "handler-test-secret"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type memorySlot struct {
	mu   sync.Mutex
	data []byte
}

func (s *memorySlot) Read(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, cart.ErrSlotEmpty
	}
	return s.data, nil
}

func (s *memorySlot) Write(_ context.Context, v []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), v...)
	return nil
}

type memoryOpener struct {
	mu    sync.Mutex
	slots map[string]*memorySlot
}

func newMemoryOpener() *memoryOpener {
	return &memoryOpener{slots: map[string]*memorySlot{}}
}

func (o *memoryOpener) Open(id string) cart.Slot {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.slots[id]; !ok {
		o.slots[id] = &memorySlot{}
	}
	return o.slots[id]
}

type fakeVerifier map[string]*firebase.Identity

func (f fakeVerifier) Verify(_ context.Context, token string) (*firebase.Identity, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return nil, errors.New("invalid token")
}

var testIdentities = fakeVerifier{
	"admin-token":    {UID: "admin-uid", Email: "owner@eastside.test", Role: "admin", StoreID: testStoreID},
	"customer-token": {UID: "customer-uid", Email: "kai@example.com"},
}

// cartClient keeps the session cookie between requests like a browser would.
type cartClient struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func newCartClient(t *testing.T, source catalog.Source, opener cart.SlotOpener) *cartClient {
	t.Helper()
	r := gin.New()
	h := &CartHandler{Catalog: source}
	g := r.Group("/api/cart")
	g.Use(middleware.CartSession(cart.NewRegistry(opener), middleware.SessionConfig{Secret: testSecret, TTL: time.Hour}, logger.Nop()))
	g.GET("", h.GetCart)
	g.DELETE("", h.ClearCart)
	g.POST("/items", h.AddItem)
	g.PUT("/items/:key/quantity", h.UpdateQuantity)
	g.PUT("/items/:key/variant", h.UpdateVariant)
	g.DELETE("/items/:key", h.RemoveItem)
	return &cartClient{t: t, router: r}
}

func (c *cartClient) do(method, path string, body any) (*httptest.ResponseRecorder, cartBody) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			c.cookie = ck
		}
	}

	var out cartBody
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			c.t.Fatalf("decode cart body %s: %v", w.Body.String(), err)
		}
	}
	return w, out
}

type cartBody struct {
	Items []struct {
		IdentityKey  string `json:"identityKey"`
		ProductID    string `json:"productId"`
		BoardVariant string `json:"boardVariant"`
		Quantity     int    `json:"quantity"`
	} `json:"items"`
	Subtotal  json.Number `json:"subtotal"`
	ItemCount int         `json:"itemCount"`
	State     string      `json:"state"`
}

func (b cartBody) keys() []string {
	keys := make([]string, 0, len(b.Items))
	for _, item := range b.Items {
		keys = append(keys, item.IdentityKey)
	}
	return keys
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return out
}
