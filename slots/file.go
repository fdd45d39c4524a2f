package slots

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"eastside-storefront/cart"
)

var unsafeSessionChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// FileOpener stores each session's cart as <Dir>/<session>/eastside_cart.json.
type FileOpener struct {
	Dir string
}

func (o FileOpener) Open(sessionID string) cart.Slot {
	safe := unsafeSessionChars.ReplaceAllString(sessionID, "_")
	if safe == "" {
		safe = "anonymous"
	}
	return &fileSlot{path: filepath.Join(o.Dir, safe, cart.StorageKey+".json")}
}

type fileSlot struct {
	path string
}

func (f *fileSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cart.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", f.path, err)
	}
	return data, nil
}

// Write replaces the file atomically so a crash never leaves half a snapshot behind.
func (f *fileSlot) Write(ctx context.Context, value []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".slot-*")
	if err != nil {
		return fmt.Errorf("create temp slot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp slot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace slot: %w", err)
	}
	return nil
}
