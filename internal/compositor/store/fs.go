package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FSStore serves blobs from a filesystem tree
type FSStore struct {
	fsys fs.FS
}

// NewFSStore creates a store rooted at dir
func NewFSStore(dir string) *FSStore {
	return &FSStore{fsys: os.DirFS(dir)}
}

// NewFSStoreFromFS wraps an existing fs.FS (embedded or in-memory trees)
func NewFSStoreFromFS(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// Get reads the blob at path
func (s *FSStore) Get(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
