package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eastside-storefront/logger"
	"eastside-storefront/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const defaultRetryDelay = 5 * time.Second

// Document is one product document as read from the collection.
type Document struct {
	ID   string
	Data map[string]any
}

// UpdateRecorder is told about every snapshot applied or failed.
type UpdateRecorder interface {
	CatalogUpdate(ok bool)
}

type snapshotStream interface {
	Next() ([]Document, error)
	Stop()
}

// FirestoreWatcher keeps a Catalog in sync with stores/{storeID}/products.
type FirestoreWatcher struct {
	catalog    *Catalog
	storeID    string
	log        *logger.Logger
	recorder   UpdateRecorder
	retryDelay time.Duration
	open       func(ctx context.Context) snapshotStream
}

func NewFirestoreWatcher(client *firestore.Client, storeID string, c *Catalog, log *logger.Logger, recorder UpdateRecorder) *FirestoreWatcher {
	if log == nil {
		log = logger.Nop()
	}
	w := &FirestoreWatcher{
		catalog:    c,
		storeID:    storeID,
		log:        log,
		recorder:   recorder,
		retryDelay: defaultRetryDelay,
	}
	w.open = func(ctx context.Context) snapshotStream {
		query := client.Collection("stores").Doc(storeID).Collection("products")
		return &firestoreStream{it: query.Snapshots(ctx)}
	}
	return w
}

// Run blocks until ctx is done. Listener errors are recorded on the catalog and the
// listener is reopened after a delay; the last good product set stays visible.
func (w *FirestoreWatcher) Run(ctx context.Context) {
	lctx := w.log.WithField(ctx, "store_id", w.storeID)
	for {
		err := w.watch(ctx)
		if ctx.Err() != nil {
			return
		}
		w.log.Error(lctx, "catalog.listen_failed", err)
		w.catalog.Fail(fmt.Errorf("%w: %v", ErrUnavailable, err))
		w.record(false)

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retryDelay):
		}
	}
}

func (w *FirestoreWatcher) watch(ctx context.Context) error {
	stream := w.open(ctx)
	defer stream.Stop()

	for {
		docs, err := stream.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				return errors.New("snapshot listener closed")
			}
			return err
		}
		w.apply(ctx, docs)
	}
}

func (w *FirestoreWatcher) apply(ctx context.Context, docs []Document) {
	products := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, DecodeProduct(doc.ID, doc.Data))
	}
	w.catalog.Replace(products)
	w.record(true)
	w.log.Debug(w.log.WithField(ctx, "products", len(products)), "catalog.updated")
}

func (w *FirestoreWatcher) record(ok bool) {
	if w.recorder != nil {
		w.recorder.CatalogUpdate(ok)
	}
}

type firestoreStream struct {
	it *firestore.QuerySnapshotIterator
}

func (s *firestoreStream) Next() ([]Document, error) {
	snap, err := s.it.Next()
	if err != nil {
		if status.Code(err) == codes.Canceled {
			return nil, context.Canceled
		}
		return nil, err
	}
	refs, err := snap.Documents.GetAll()
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(refs))
	for _, ref := range refs {
		docs = append(docs, Document{ID: ref.Ref.ID, Data: ref.Data()})
	}
	return docs, nil
}

func (s *firestoreStream) Stop() {
	s.it.Stop()
}
