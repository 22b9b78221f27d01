package compositor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/GardenBot_Go/internal/compositor/store"
)

// sprite is a cache entry; missing marks a path known to be absent
type sprite struct {
	img     *image.NRGBA
	missing bool
}

// spriteCache decodes sprites from a blob store and keeps them in an LRU.
// Cached images are shared and must never be written to.
type spriteCache struct {
	blobs store.BlobStore
	cache *expirable.LRU[string, sprite]
}

func newSpriteCache(blobs store.BlobStore, size int, ttl time.Duration) *spriteCache {
	return &spriteCache{
		blobs: blobs,
		cache: expirable.NewLRU[string, sprite](size, nil, ttl),
	}
}

// get returns the decoded sprite or an error wrapping store.ErrNotExist
func (c *spriteCache) get(ctx context.Context, path string) (*image.NRGBA, error) {
	if entry, ok := c.cache.Get(path); ok {
		if entry.missing {
			return nil, fmt.Errorf("%w: %s", store.ErrNotExist, path)
		}
		return entry.img, nil
	}

	data, err := c.blobs.Get(ctx, path)
	if errors.Is(err, store.ErrNotExist) {
		c.cache.Add(path, sprite{missing: true})
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode sprite %s: %w", path, err)
	}
	img := toNRGBA(decoded)
	c.cache.Add(path, sprite{img: img})
	return img, nil
}

// optional is get with absence mapped to (nil, nil)
func (c *spriteCache) optional(ctx context.Context, path string) (*image.NRGBA, error) {
	img, err := c.get(ctx, path)
	if errors.Is(err, store.ErrNotExist) {
		return nil, nil
	}
	return img, err
}
