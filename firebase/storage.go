package firebase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"eastside-storefront/logger"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

// MaxImageBytes caps uploads and remote imports.
const MaxImageBytes = 5 << 20

var ErrImageTooLarge = errors.New("image exceeds 5MB")

// StorageClient is the Remote Object Store used by the admin dashboard.
type StorageClient interface {
	UploadProductImage(ctx context.Context, storeID, uid string, file io.Reader, filename, contentType string) (string, error)
	ImportRemoteImage(ctx context.Context, storeID, uid, imageURL string) (string, error)
	DeleteFile(ctx context.Context, objectPath string) error
}

// BucketStorage stores product images in a Cloud Storage bucket.
type BucketStorage struct {
	bucket     *storage.BucketHandle
	bucketName string
	httpClient *http.Client
	log        *logger.Logger
	now        func() time.Time
	validate   func(string) error
}

// NewStorageClient opens the app's storage bucket.
func NewStorageClient(ctx context.Context, app *firebase.App, bucketName string, log *logger.Logger) (*BucketStorage, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("FIREBASE_STORAGE_BUCKET not set")
	}
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("storage bucket: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &BucketStorage{
		bucket:     bucket,
		bucketName: bucketName,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
		now:        time.Now,
		validate:   validateExternalURL,
	}, nil
}

// ProductImagePath is where an admin upload lands.
func ProductImagePath(storeID, uid, filename string, at time.Time) string {
	return fmt.Sprintf(
		"stores/%s/uploads/products/%s/%d-%s",
		sanitizeFilename(storeID),
		sanitizeFilename(uid),
		at.UnixMilli(),
		sanitizeFilename(filename),
	)
}

// PublicURL is the URL an uploaded object is served from.
func PublicURL(bucketName, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectPath)
}

func (b *BucketStorage) UploadProductImage(ctx context.Context, storeID, uid string, file io.Reader, filename, contentType string) (string, error) {
	objectPath := ProductImagePath(storeID, uid, filename, b.now())
	if err := b.write(ctx, objectPath, file, contentType); err != nil {
		return "", err
	}
	return PublicURL(b.bucketName, objectPath), nil
}

// ImportRemoteImage downloads an image from imageURL and stores it like an upload.
func (b *BucketStorage) ImportRemoteImage(ctx context.Context, storeID, uid, imageURL string) (string, error) {
	body, contentType, err := fetchImage(ctx, b.httpClient, b.validate, imageURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	filename := imageURL[strings.LastIndex(imageURL, "/")+1:]
	if i := strings.IndexAny(filename, "?#"); i >= 0 {
		filename = filename[:i]
	}
	objectPath := ProductImagePath(storeID, uid, filename, b.now())
	if err := b.write(ctx, objectPath, limitImage(body), contentType); err != nil {
		return "", err
	}
	return PublicURL(b.bucketName, objectPath), nil
}

// DeleteFile deletes an object given its path inside the bucket.
func (b *BucketStorage) DeleteFile(ctx context.Context, objectPath string) error {
	if err := b.bucket.Object(objectPath).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectPath, err)
	}
	b.log.Info(b.log.WithField(ctx, "object", objectPath), "storage.object_deleted")
	return nil
}

func (b *BucketStorage) write(ctx context.Context, objectPath string, r io.Reader, contentType string) error {
	obj := b.bucket.Object(objectPath)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := io.Copy(wc, r); err != nil {
		wc.Close()
		return fmt.Errorf("upload %s: %w", objectPath, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload: %w", err)
	}

	// Public read so the storefront can render the URL without credentials.
	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		b.log.Error(b.log.WithField(ctx, "object", objectPath), "storage.acl_failed", err)
	}
	return nil
}

func fetchImage(ctx context.Context, client *http.Client, validate func(string) error, imageURL string) (io.ReadCloser, string, error) {
	if err := validate(imageURL); err != nil {
		return nil, "", fmt.Errorf("URL validation failed for %s: %w", imageURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image from %s: %w", imageURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		resp.Body.Close()
		return nil, "", fmt.Errorf("URL %s returned non-image content-type: %q", imageURL, contentType)
	}
	if resp.ContentLength > MaxImageBytes {
		resp.Body.Close()
		return nil, "", ErrImageTooLarge
	}
	return resp.Body, contentType, nil
}

type limitedImage struct {
	r *io.LimitedReader
}

func limitImage(r io.Reader) io.Reader {
	return &limitedImage{r: &io.LimitedReader{R: r, N: MaxImageBytes + 1}}
}

func (l *limitedImage) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	if l.r.N <= 0 {
		return n, ErrImageTooLarge
	}
	return n, err
}
