// Package compositor assembles plant and pot sprites into rendered images.
package compositor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"time"

	"github.com/osse101/GardenBot_Go/internal/compositor/store"
	"github.com/osse101/GardenBot_Go/internal/domain"
)

// Rendering constants
const (
	Scale            = 5
	DefaultCacheSize = 512
	DefaultCacheTTL  = time.Hour
)

// RenderRequest describes one plant in its pot
type RenderRequest struct {
	PlantType   *domain.PlantType
	Variant     int
	Nourishment int
	PotType     string
	PotHue      int
}

// Compositor renders plants from a sprite store. It is safe for concurrent use.
type Compositor struct {
	sprites *spriteCache
}

// New creates a compositor over blobs with an LRU of decoded sprites
func New(blobs store.BlobStore, cacheSize int, cacheTTL time.Duration) *Compositor {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &Compositor{sprites: newSpriteCache(blobs, cacheSize, cacheTTL)}
}

// layers holds the decoded, hue-shifted parts of one render
type layers struct {
	underlay, plant, overlay *image.NRGBA
	back, soil, front        *image.NRGBA
}

// Render composites the plant and pot, upscales and crops to content.
// A missing pot part or plant frame yields ErrSpriteMissing.
func (c *Compositor) Render(ctx context.Context, req RenderRequest) (*image.NRGBA, error) {
	l, err := c.load(ctx, req)
	if err != nil {
		return nil, err
	}
	return Upscale(CropToContent(compose(l)), Scale), nil
}

func (c *Compositor) load(ctx context.Context, req RenderRequest) (*layers, error) {
	var l layers
	soilHue := 0

	if req.PlantType != nil && req.Nourishment != 0 {
		base := PlantSpriteBase(req.PlantType, req.Variant, req.Nourishment)
		var err error
		if l.plant, err = c.mandatory(ctx, base+".png"); err != nil {
			return nil, err
		}
		if l.overlay, err = c.sprites.optional(ctx, base+"_overlay.png"); err != nil {
			return nil, err
		}
		if l.underlay, err = c.sprites.optional(ctx, base+"_underlay.png"); err != nil {
			return nil, err
		}
		soilHue = req.PlantType.SoilHue
	}

	potType := req.PotType
	if potType == "" {
		potType = domain.PotTypeClay
	}
	potShift := float64(req.PotHue) / domain.HueCircle

	back, err := c.mandatory(ctx, PotSpritePath(potType, "back"))
	if err != nil {
		return nil, err
	}
	soil, err := c.mandatory(ctx, PotSpritePath(potType, "soil"))
	if err != nil {
		return nil, err
	}
	front, err := c.mandatory(ctx, PotSpritePath(potType, "front"))
	if err != nil {
		return nil, err
	}
	l.back = HueShift(back, potShift)
	l.front = HueShift(front, potShift)
	l.soil = HueShift(soil, float64(soilHue)/domain.HueCircle)
	return &l, nil
}

func (c *Compositor) mandatory(ctx context.Context, path string) (*image.NRGBA, error) {
	img, err := c.sprites.get(ctx, path)
	if errors.Is(err, store.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSpriteMissing, path)
	}
	return img, err
}

// PlantSpriteBase is the sprite path without extension for a plant frame.
// Alive frames carry the variant; dead frames do not.
func PlantSpriteBase(pt *domain.PlantType, variant, nourishment int) string {
	growth := nourishment
	folder := "alive"
	if nourishment < 0 {
		growth = -nourishment
		folder = "dead"
	}
	level := pt.DisplayLevel(growth)
	if folder == "dead" {
		return fmt.Sprintf("plants/%s/dead/%d", pt.Name, level)
	}
	return fmt.Sprintf("plants/%s/alive/%d_%d", pt.Name, level, variant)
}

// PotSpritePath returns the path of one pot part (back, soil, front)
func PotSpritePath(potType, part string) string {
	return fmt.Sprintf("pots/%s/%s.png", potType, part)
}

// compose stacks the layers: underlay, pot back, soil, plant, pot front, overlay.
// The pot is centred horizontally and its bottom meets the plant's bottom.
func compose(l *layers) *image.NRGBA {
	potW := max(l.back.Rect.Dx(), l.soil.Rect.Dx(), l.front.Rect.Dx())
	potH := max(l.back.Rect.Dy(), l.soil.Rect.Dy(), l.front.Rect.Dy())
	plantW, plantH := 0, 0
	for _, img := range []*image.NRGBA{l.underlay, l.plant, l.overlay} {
		if img != nil {
			plantW = max(plantW, img.Rect.Dx())
			plantH = max(plantH, img.Rect.Dy())
		}
	}

	w, h := max(potW, plantW), max(potH, plantH)
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))

	place := func(img *image.NRGBA) {
		if img == nil {
			return
		}
		x := (w - img.Rect.Dx()) / 2
		y := h - img.Rect.Dy()
		r := image.Rect(x, y, x+img.Rect.Dx(), y+img.Rect.Dy())
		draw.Draw(canvas, r, img, img.Rect.Min, draw.Over)
	}

	place(l.underlay)
	place(l.back)
	place(l.soil)
	place(l.plant)
	place(l.front)
	place(l.overlay)
	return canvas
}
