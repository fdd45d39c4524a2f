package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"eastside-storefront/logger"

	"google.golang.org/api/iterator"
)

type scriptedStream struct {
	mu      sync.Mutex
	batches [][]Document
	errs    []error
	stopped bool
	done    chan struct{}
}

func (s *scriptedStream) Next() ([]Document, error) {
	s.mu.Lock()
	if len(s.batches) > 0 {
		batch := s.batches[0]
		s.batches = s.batches[1:]
		s.mu.Unlock()
		return batch, nil
	}
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()
	<-s.done
	return nil, iterator.Done
}

func (s *scriptedStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

type recorder struct {
	mu     sync.Mutex
	ok     int
	failed int
}

func (r *recorder) CatalogUpdate(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ok {
		r.ok++
	} else {
		r.failed++
	}
}

func (r *recorder) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ok, r.failed
}

func newTestWatcher(c *Catalog, rec *recorder, streams ...*scriptedStream) *FirestoreWatcher {
	var mu sync.Mutex
	next := 0
	return &FirestoreWatcher{
		catalog:    c,
		storeID:    "eastside",
		log:        logger.Nop(),
		recorder:   rec,
		retryDelay: time.Millisecond,
		open: func(context.Context) snapshotStream {
			mu.Lock()
			defer mu.Unlock()
			s := streams[next]
			if next < len(streams)-1 {
				next++
			}
			return s
		},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWatcherAppliesSnapshots(t *testing.T) {
	c := New()
	rec := &recorder{}
	stream := &scriptedStream{
		batches: [][]Document{
			{{ID: "1", Data: map[string]any{"name": "First", "slug": "first"}}},
			{
				{ID: "1", Data: map[string]any{"name": "First", "slug": "first"}},
				{ID: "2", Data: map[string]any{"name": "Second", "slug": "second"}},
			},
		},
		done: make(chan struct{}),
	}
	w := newTestWatcher(c, rec, stream)

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(finished)
	}()

	waitFor(t, func() bool { ok, _ := rec.counts(); return ok == 2 })
	if _, ok := c.ProductBySlug("second"); !ok {
		t.Fatal("expected second snapshot to be visible")
	}

	cancel()
	close(stream.done)
	<-finished
}

func TestWatcherKeepsProductsOnError(t *testing.T) {
	c := New()
	rec := &recorder{}
	failing := &scriptedStream{
		batches: [][]Document{{{ID: "1", Data: map[string]any{"slug": "kept"}}}},
		errs:    []error{errors.New("permission denied")},
		done:    make(chan struct{}),
	}
	healthy := &scriptedStream{done: make(chan struct{})}
	w := newTestWatcher(c, rec, failing, healthy)

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(finished)
	}()

	waitFor(t, func() bool { _, failed := rec.counts(); return failed >= 1 })
	if !errors.Is(c.Err(), ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", c.Err())
	}
	if _, ok := c.ProductBySlug("kept"); !ok {
		t.Fatal("expected last good snapshot to survive a listener error")
	}

	cancel()
	close(healthy.done)
	<-finished
}
