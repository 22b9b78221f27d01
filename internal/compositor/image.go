package compositor

import (
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

// toNRGBA returns img as *image.NRGBA with origin (0,0), copying when needed
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Rect, img, b.Min, draw.Src)
	return out
}

// HueShift rotates the hue of every pixel by fraction of a full turn.
// Whole turns (0, 1.0, -1.0) return an exact copy.
func HueShift(img image.Image, fraction float64) *image.NRGBA {
	src := toNRGBA(img)
	out := image.NewNRGBA(src.Rect)
	copy(out.Pix, src.Pix)

	fraction -= math.Floor(fraction)
	if fraction == 0 {
		return out
	}

	for i := 0; i+3 < len(out.Pix); i += 4 {
		if out.Pix[i+3] == 0 {
			continue
		}
		h, s, v := rgbToHSV(out.Pix[i], out.Pix[i+1], out.Pix[i+2])
		h += fraction
		if h >= 1 {
			h--
		}
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = hsvToRGB(h, s, v)
	}
	return out
}

// rgbToHSV returns hue in [0,1), saturation and value in [0,1]
func rgbToHSV(r8, g8, b8 uint8) (h, s, v float64) {
	r, g, b := float64(r8)/255, float64(g8)/255, float64(b8)/255
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	v = maxc
	if maxc == minc {
		return 0, 0, v
	}
	delta := maxc - minc
	s = delta / maxc

	switch maxc {
	case r:
		h = (g - b) / delta
	case g:
		h = 2 + (b-r)/delta
	default:
		h = 4 + (r-g)/delta
	}
	h /= 6
	if h < 0 {
		h++
	}
	return h, s, v
}

func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	if s == 0 {
		c := clamp8(v * 255)
		return c, c, c
	}
	h6 := h * 6
	sector := math.Floor(h6)
	f := h6 - sector
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch int(sector) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return clamp8(r * 255), clamp8(g * 255), clamp8(b * 255)
}

func clamp8(x float64) uint8 {
	x = math.Round(x)
	switch {
	case x < 0:
		return 0
	case x > 255:
		return 255
	}
	return uint8(x)
}

// ContentBounds returns the bounding box of pixels with any non-zero channel.
// A fully empty image yields an empty rectangle.
func ContentBounds(img *image.NRGBA) image.Rectangle {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	minX, minY, maxX, maxY := w, h, -1, -1
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			px := row[x*4 : x*4+4]
			if px[0]|px[1]|px[2]|px[3] == 0 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < 0 {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1).Add(img.Rect.Min)
}

// Crop copies the rectangle r of img into a new zero-origin image
func Crop(img *image.NRGBA, r image.Rectangle) *image.NRGBA {
	return imaging.Crop(img, r)
}

// CropToContent trims fully transparent black borders. Empty images are returned as is.
func CropToContent(img *image.NRGBA) *image.NRGBA {
	r := ContentBounds(img)
	if r.Empty() {
		return img
	}
	return Crop(img, r)
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling
func Upscale(img *image.NRGBA, factor int) *image.NRGBA {
	return imaging.Resize(img, img.Rect.Dx()*factor, img.Rect.Dy()*factor, imaging.NearestNeighbor)
}

// Mirror flips img horizontally
func Mirror(img *image.NRGBA) *image.NRGBA {
	return imaging.FlipH(img)
}
