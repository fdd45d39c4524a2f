package utils

import (
	"errors"
	"net/url"
	"strings"
)

var ErrNotStorageURL = errors.New("not a storage object URL for this bucket")

// ExtractObjectPath returns the object path inside bucket for a public storage URL
// (https://storage.googleapis.com/<bucket>/<path>) or a Firebase download URL
// (https://firebasestorage.googleapis.com/v0/b/<bucket>/o/<escaped path>).
// An empty bucket accepts any bucket.
func ExtractObjectPath(rawURL, bucket string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "https" {
		return "", ErrNotStorageURL
	}

	var gotBucket, path string
	switch u.Host {
	case "storage.googleapis.com":
		parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
		if len(parts) != 2 {
			return "", ErrNotStorageURL
		}
		gotBucket, path = parts[0], parts[1]
	case "firebasestorage.googleapis.com":
		rest, ok := strings.CutPrefix(u.EscapedPath(), "/v0/b/")
		if !ok {
			return "", ErrNotStorageURL
		}
		b, escaped, ok := strings.Cut(rest, "/o/")
		if !ok {
			return "", ErrNotStorageURL
		}
		if path, err = url.PathUnescape(escaped); err != nil {
			return "", ErrNotStorageURL
		}
		gotBucket = b
	default:
		return "", ErrNotStorageURL
	}

	if path == "" || (bucket != "" && gotBucket != bucket) {
		return "", ErrNotStorageURL
	}
	return path, nil
}
