package compositor

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeGIF(t *testing.T) {
	small := solid(2, 2, red)
	tall := solid(2, 4, green)

	data, err := EncodeGIF([]image.Image{small, tall}, 120)
	require.NoError(t, err)

	anim, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, anim.Image, 2)
	assert.Equal(t, 0, anim.LoopCount)
	assert.Equal(t, []int{12, 12}, anim.Delay)
	assert.Equal(t, []byte{gif.DisposalBackground, gif.DisposalBackground}, anim.Disposal)
	assert.Equal(t, 2, anim.Config.Width)
	assert.Equal(t, 4, anim.Config.Height)

	// The short frame is bottom-aligned; the top rows are the transparent index.
	first := anim.Image[0]
	assert.Equal(t, uint8(0), first.ColorIndexAt(0, 0))
	_, _, _, a := first.At(0, 3).RGBA()
	assert.NotZero(t, a)
}

func TestEncodeGIF_NoFrames(t *testing.T) {
	_, err := EncodeGIF(nil, 100)
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestBuildPalette_FallsBackWhenTooManyColours(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 300, 1))
	for x := 0; x < 300; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: uint8(x), G: uint8(x / 2), B: 7, A: 255})
	}
	pal := buildPalette([]image.Image{img})
	assert.LessOrEqual(t, len(pal), 256)
	assert.Equal(t, color.NRGBA{}, pal[0])
}

func TestTile(t *testing.T) {
	left := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	left.SetNRGBA(0, 0, red)
	right := solid(3, 4, green)

	strip := Tile([]image.Image{left, right}, rand.New(rand.NewSource(1)))
	assert.Equal(t, image.Rect(0, 0, 5, 4), strip.Rect)
	// Short tile is bottom-aligned, so rows 0..1 of column 0..1 are empty.
	assert.Equal(t, color.NRGBA{}, strip.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{}, strip.NRGBAAt(1, 1))
	assert.Equal(t, green, strip.NRGBAAt(4, 0))

	// Same seed, same strip.
	again := Tile([]image.Image{left, right}, rand.New(rand.NewSource(1)))
	assert.Equal(t, strip.Pix, again.Pix)
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(solid(3, 3, blue))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 3), img.Bounds())
}
