// Package store provides read-only blob stores for sprite assets.
package store

import (
	"context"
	"errors"
)

// ErrNotExist is returned when a blob is missing from the store
var ErrNotExist = errors.New("blob does not exist")

// BlobStore reads asset blobs by slash-separated path
type BlobStore interface {
	Get(ctx context.Context, path string) ([]byte, error)
}
