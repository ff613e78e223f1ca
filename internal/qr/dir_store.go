package qr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirStore writes images into a local directory. The directory is created at
// construction; a write failure after that (directory removed, disk full)
// surfaces to the caller and aborts the owning request.
type DirStore struct {
	dir string
}

func NewDirStore(dir string) (*DirStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("qr output directory not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("qr output directory: %w", err)
	}
	return &DirStore{dir: dir}, nil
}

func (s *DirStore) Put(ctx context.Context, name string, png []byte) error {
	return os.WriteFile(filepath.Join(s.dir, name), png, 0o644)
}
