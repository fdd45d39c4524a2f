package cart

import (
	"context"
	"errors"
)

// StorageKey is the fixed name of the durable slot that holds a cart snapshot.
const StorageKey = "eastside_cart"

// ErrSlotEmpty is returned by Slot.Read when nothing has been stored yet.
var ErrSlotEmpty = errors.New("storage slot empty")

// Slot is a single durable key-value cell. Values are opaque bytes.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, value []byte) error
}

// SlotOpener hands out the cart slot belonging to one browser session.
type SlotOpener interface {
	Open(sessionID string) Slot
}
