package cart

import (
	"context"
	"sync"
	"time"
)

type session struct {
	store    *Store
	lastSeen time.Time
}

// Registry keeps one Store per browser session. Evicting a session only drops the
// in-memory handle; its snapshot stays in the durable slot and is restored on the
// next request.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	opener   SlotOpener
	opts     []Option
	now      func() time.Time
}

func NewRegistry(opener SlotOpener, opts ...Option) *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		opener:   opener,
		opts:     opts,
		now:      time.Now,
	}
}

// Get returns the session's store, restoring it from its slot on first use.
func (r *Registry) Get(ctx context.Context, sessionID string) *Store {
	r.mu.Lock()
	if s, ok := r.sessions[sessionID]; ok {
		s.lastSeen = r.now()
		r.mu.Unlock()
		return s.store
	}
	r.mu.Unlock()

	// Restore outside the lock so a slow backend does not stall other sessions.
	opts := append(append([]Option{}, r.opts...), WithSessionID(sessionID))
	store := NewStore(ctx, r.opener.Open(sessionID), opts...)

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sessionID]; ok {
		s.lastSeen = r.now()
		return s.store
	}
	r.sessions[sessionID] = &session{store: store, lastSeen: r.now()}
	return store
}

// EvictIdle drops sessions not seen for maxIdle and returns how many were dropped.
func (r *Registry) EvictIdle(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	evicted := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Len reports how many sessions are held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// RunEviction evicts idle sessions every interval until ctx is done.
func (r *Registry) RunEviction(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.EvictIdle(maxIdle)
		}
	}
}
