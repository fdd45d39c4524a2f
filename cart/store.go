package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"eastside-storefront/logger"
	"eastside-storefront/models"

	"github.com/shopspring/decimal"
)

// State is the macro state of a cart.
type State string

const (
	StateEmpty     State = "empty"
	StatePopulated State = "populated"
)

// Mutation names reported to the Observer.
const (
	OpAdd           = "add"
	OpRemove        = "remove"
	OpQuantity      = "quantity"
	OpVariantRename = "variant_rename"
	OpVariantMerge  = "variant_merge"
	OpClear         = "clear"
)

// Snapshot restore outcomes reported to the Observer.
const (
	RestoreEmpty      = "empty"
	RestoreRestored   = "restored"
	RestoreDiscarded  = "discarded"
	RestoreUnreadable = "unreadable"
)

const defaultWriteTimeout = 2 * time.Second

// Observer receives cart events. metrics.Storefront implements it.
type Observer interface {
	CartMutation(op string)
	SnapshotRestore(outcome string)
	SlotWriteFailure()
}

type nopObserver struct{}

func (nopObserver) CartMutation(string)    {}
func (nopObserver) SnapshotRestore(string) {}
func (nopObserver) SlotWriteFailure()      {}

// View is a consistent read of the cart and its derived totals.
type View struct {
	Items     []models.CartLineItem `json:"items"`
	Subtotal  decimal.Decimal       `json:"subtotal"`
	ItemCount int                   `json:"itemCount"`
	State     State                 `json:"state"`
}

// Store owns the line items of one cart and writes every change through to its Slot.
//
// Repeat adds of an existing (product, variant) line only bump the quantity: the name,
// image and prices captured by the first add are kept, so later catalog edits never
// reach a line already in the cart.
//
// A mutation that leaves the items unchanged (a repeat add on a line already at the
// maximum, a variant change to the current variant, an unknown key) is not written;
// Clear always is.
type Store struct {
	mu        sync.RWMutex
	items     []models.CartLineItem
	subtotal  decimal.Decimal
	itemCount int

	slot         Slot
	log          *logger.Logger
	observer     Observer
	sessionID    string
	writeTimeout time.Duration
}

type Option func(*Store)

func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

func WithSessionID(id string) Option {
	return func(s *Store) { s.sessionID = id }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// NewStore restores the cart from slot. It never fails: a missing, unreadable or
// malformed snapshot yields an empty cart and the cause is logged.
func NewStore(ctx context.Context, slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:         slot,
		log:          logger.Nop(),
		observer:     nopObserver{},
		writeTimeout: defaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.items = s.restore(ctx)
	s.recompute()
	return s
}

func (s *Store) logContext(ctx context.Context) context.Context {
	if s.sessionID != "" {
		ctx = s.log.WithSessionID(ctx, s.sessionID)
	}
	return ctx
}

func (s *Store) restore(ctx context.Context) []models.CartLineItem {
	lctx := s.logContext(ctx)
	if s.slot == nil {
		s.observer.SnapshotRestore(RestoreEmpty)
		return nil
	}

	raw, err := s.slot.Read(ctx)
	if errors.Is(err, ErrSlotEmpty) || (err == nil && len(raw) == 0) {
		s.observer.SnapshotRestore(RestoreEmpty)
		return nil
	}
	if err != nil {
		s.log.Error(lctx, "cart.snapshot_unreadable", err)
		s.observer.SnapshotRestore(RestoreUnreadable)
		return nil
	}

	items, err := decodeSnapshot(raw)
	if err != nil {
		lctx = s.log.WithFields(lctx, map[string]any{
			"reason": err.Error(),
			"bytes":  len(raw),
		})
		s.log.Warn(lctx, "cart.snapshot_discarded")
		s.observer.SnapshotRestore(RestoreDiscarded)
		return nil
	}
	s.observer.SnapshotRestore(RestoreRestored)
	return items
}

// AddItem adds quantity units of product in the given variant. An empty variant means
// complete. When the line already exists its quantity grows; otherwise a new line is
// appended. Quantities are clamped, never rejected.
func (s *Store) AddItem(product models.Product, variant models.BoardVariant, quantity int) {
	if variant == "" {
		variant = models.VariantComplete
	}
	if !variant.Valid() || product.ID == "" {
		lctx := s.log.WithFields(s.logContext(context.Background()), map[string]any{
			"product_id": product.ID,
			"variant":    string(variant),
		})
		s.log.Warn(lctx, "cart.add_ignored")
		return
	}
	key := models.IdentityKey(product.ID, variant)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(key); i >= 0 {
		next := addQuantity(s.items[i].Quantity, quantity)
		if next == s.items[i].Quantity {
			return
		}
		s.items[i].Quantity = next
	} else {
		s.items = append(s.items, models.CartLineItem{
			IdentityKey:       key,
			ProductID:         product.ID,
			ProductName:       product.Name,
			ProductSlug:       product.Slug,
			ImageURL:          product.PrimaryImage(),
			BoardVariant:      variant,
			Quantity:          ClampQuantity(quantity),
			UnitPriceComplete: product.CompletePrice,
			UnitPriceDeckOnly: product.DeckOnlyPrice,
		})
	}
	s.commit(OpAdd)
}

// RemoveItem deletes the line with key. Unknown keys are ignored.
func (s *Store) RemoveItem(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.commit(OpRemove)
}

// UpdateQuantity sets the clamped quantity of the line with key. Unknown keys are ignored.
func (s *Store) UpdateQuantity(key string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return
	}
	next := ClampQuantity(quantity)
	if s.items[i].Quantity == next {
		return
	}
	s.items[i].Quantity = next
	s.commit(OpQuantity)
}

// UpdateBoardVariant switches the line with key to variant. If the cart has no line
// for the product in that variant the line is renamed in place. Otherwise the two
// lines merge: the existing target keeps its snapshot and absorbs the quantity.
func (s *Store) UpdateBoardVariant(key string, variant models.BoardVariant) {
	if !variant.Valid() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return
	}
	current := s.items[i]
	if current.BoardVariant == variant {
		return
	}

	targetKey := models.IdentityKey(current.ProductID, variant)
	j := s.indexOf(targetKey)
	if j < 0 {
		s.items[i].BoardVariant = variant
		s.items[i].IdentityKey = targetKey
		s.commit(OpVariantRename)
		return
	}

	s.items[j].Quantity = addQuantity(s.items[j].Quantity, current.Quantity)
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.commit(OpVariantMerge)
}

// Clear empties the cart and always persists the empty snapshot.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.commit(OpClear)
}

// Items returns a copy of the line items in cart order.
func (s *Store) Items() []models.CartLineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyItems()
}

// Item returns the line with key.
func (s *Store) Item(key string) (models.CartLineItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(key); i >= 0 {
		return s.items[i], true
	}
	return models.CartLineItem{}, false
}

func (s *Store) Subtotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subtotal
}

func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemCount
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state()
}

// Snapshot returns items and totals taken under one lock.
func (s *Store) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{
		Items:     s.copyItems(),
		Subtotal:  s.subtotal,
		ItemCount: s.itemCount,
		State:     s.state(),
	}
}

func (s *Store) state() State {
	if len(s.items) == 0 {
		return StateEmpty
	}
	return StatePopulated
}

func (s *Store) copyItems() []models.CartLineItem {
	out := make([]models.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) indexOf(key string) int {
	for i := range s.items {
		if s.items[i].IdentityKey == key {
			return i
		}
	}
	return -1
}

// commit must run with mu held for writing.
func (s *Store) commit(op string) {
	s.recompute()
	s.observer.CartMutation(op)
	s.persist(op)
}

func (s *Store) recompute() {
	subtotal := decimal.Zero
	count := 0
	for _, item := range s.items {
		line := decimal.NewFromFloat(item.UnitPrice()).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
		count += item.Quantity
	}
	s.subtotal = subtotal
	s.itemCount = count
}

// persist writes the whole cart. Failures are logged and counted; the in-memory cart
// stays authoritative until the next successful write.
func (s *Store) persist(op string) {
	if s.slot == nil {
		return
	}
	lctx := s.log.WithField(s.logContext(context.Background()), "op", op)

	data, err := encodeSnapshot(s.items)
	if err != nil {
		s.log.Error(lctx, "cart.encode_failed", err)
		s.observer.SlotWriteFailure()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()
	if err := s.slot.Write(ctx, data); err != nil {
		s.log.Error(lctx, "cart.persist_failed", err)
		s.observer.SlotWriteFailure()
	}
}
