package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eastside-storefront/cart"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "eastside"

// RedisOpener keeps carts in redis under eastside:<session>:eastside_cart.
// TTL 0 means the snapshot never expires.
type RedisOpener struct {
	Client *redis.Client
	TTL    time.Duration
}

func (o RedisOpener) Open(sessionID string) cart.Slot {
	return &redisSlot{client: o.Client, key: slotKey(sessionID), ttl: o.TTL}
}

func slotKey(sessionID string) string {
	return fmt.Sprintf("%s:%s:%s", keyNamespace, sessionID, cart.StorageKey)
}

type redisSlot struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func (r *redisSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *redisSlot) Write(ctx context.Context, value []byte) error {
	if err := r.client.Set(ctx, r.key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
