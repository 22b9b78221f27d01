package compositor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"math/rand"
)

// ErrNoFrames is returned when encoding an empty frame sequence
var ErrNoFrames = errors.New("no frames to encode")

// gifAlphaThreshold is the alpha below which a pixel becomes the transparent index
const gifAlphaThreshold = 0x80

// EncodePNG encodes img as PNG
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeGIF writes frames as an infinitely looping GIF. Frames of different
// sizes are centred and bottom-aligned on a shared canvas. Index 0 of the
// palette is transparent and every frame is disposed to background.
func EncodeGIF(frames []image.Image, frameDurationMS int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	width, height := 0, 0
	for _, f := range frames {
		width = max(width, f.Bounds().Dx())
		height = max(height, f.Bounds().Dy())
	}

	pal := buildPalette(frames)
	delay := max(frameDurationMS/10, 1)
	anim := &gif.GIF{
		LoopCount:       0,
		BackgroundIndex: 0,
		Config:          image.Config{ColorModel: pal, Width: width, Height: height},
	}

	for _, f := range frames {
		anim.Image = append(anim.Image, toPaletted(f, pal, width, height))
		anim.Delay = append(anim.Delay, delay)
		anim.Disposal = append(anim.Disposal, gif.DisposalBackground)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, fmt.Errorf("failed to encode gif: %w", err)
	}
	return buf.Bytes(), nil
}

// buildPalette collects the exact opaque colours of all frames. Sprites are
// pixel art and normally fit; otherwise the web-safe palette is used.
func buildPalette(frames []image.Image) color.Palette {
	pal := color.Palette{color.NRGBA{}}
	seen := make(map[color.NRGBA]bool)
	for _, f := range frames {
		src := toNRGBA(f)
		for i := 0; i+3 < len(src.Pix); i += 4 {
			if src.Pix[i+3] < gifAlphaThreshold {
				continue
			}
			c := color.NRGBA{R: src.Pix[i], G: src.Pix[i+1], B: src.Pix[i+2], A: 0xff}
			if seen[c] {
				continue
			}
			if len(pal) == 256 {
				return append(color.Palette{color.NRGBA{}}, palette.WebSafe...)
			}
			seen[c] = true
			pal = append(pal, c)
		}
	}
	return pal
}

func toPaletted(img image.Image, pal color.Palette, width, height int) *image.Paletted {
	src := toNRGBA(img)
	out := image.NewPaletted(image.Rect(0, 0, width, height), pal)
	offX := (width - src.Rect.Dx()) / 2
	offY := height - src.Rect.Dy()

	// Index lookups through a small map; pal.Index is a linear scan.
	index := make(map[color.NRGBA]uint8, len(pal))
	for y := 0; y < src.Rect.Dy(); y++ {
		for x := 0; x < src.Rect.Dx(); x++ {
			i := y*src.Stride + x*4
			if src.Pix[i+3] < gifAlphaThreshold {
				continue
			}
			c := color.NRGBA{R: src.Pix[i], G: src.Pix[i+1], B: src.Pix[i+2], A: 0xff}
			idx, ok := index[c]
			if !ok {
				idx = uint8(pal[1:].Index(c) + 1)
				index[c] = idx
			}
			out.SetColorIndex(x+offX, y+offY, idx)
		}
	}
	return out
}

// Tile lays images out left to right, bottom-aligned, each mirrored with
// probability 0.5 drawn from rng. The strip is as tall as the tallest image.
func Tile(images []image.Image, rng *rand.Rand) *image.NRGBA {
	width, height := 0, 0
	for _, img := range images {
		width += img.Bounds().Dx()
		height = max(height, img.Bounds().Dy())
	}

	strip := image.NewNRGBA(image.Rect(0, 0, width, height))
	x := 0
	for _, img := range images {
		tile := toNRGBA(img)
		if rng.Float64() < 0.5 {
			tile = Mirror(tile)
		}
		w, h := tile.Rect.Dx(), tile.Rect.Dy()
		draw.Draw(strip, image.Rect(x, height-h, x+w, height), tile, image.Point{}, draw.Src)
		x += w
	}
	return strip
}
