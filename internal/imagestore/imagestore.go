package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// Store persists uploaded image blobs and hands back the public URL that goes
// into a product_images row. The repository layer never touches blobs.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// DiskStore writes uploads under <root>/uploads and serves them as
// /static/uploads/<name>. Names are uuid-prefixed so concurrent uploads of
// the same filename cannot clobber each other.
type DiskStore struct {
	Root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(filepath.Join(root, "uploads"), 0o755); err != nil {
		return nil, fmt.Errorf("imagestore: create upload dir: %w", err)
	}
	return &DiskStore{Root: root}, nil
}

func (s *DiskStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + "_" + filepath.Base(filename)
	dst := filepath.Join(s.Root, "uploads", name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("imagestore: create %s: %w", dst, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("imagestore: write %s: %w", dst, err)
	}

	return path.Join("/static/uploads", name), nil
}
