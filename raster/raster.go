package raster

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/hferris/gleaner/model"
)

// Raster is a page rendered to pixels, normalized to RGB. Source images
// with alpha or a single channel are converted on construction so that
// downstream stages see one fixed representation.
type Raster struct {
	img *image.RGBA
}

// FromImage normalizes an arbitrary decoded image into a Raster.
// Grayscale, paletted, YCbCr and alpha-carrying sources are all drawn
// onto an opaque RGBA canvas anchored at the origin.
func FromImage(src image.Image) *Raster {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return &Raster{img: dst}
}

// New creates a blank white raster of the given dimensions.
func New(width, height int) *Raster {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := range dst.Pix {
		dst.Pix[i] = 0xff
	}
	return &Raster{img: dst}
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int {
	return r.img.Rect.Dx()
}

// Height returns the raster height in pixels.
func (r *Raster) Height() int {
	return r.img.Rect.Dy()
}

// Bounds returns the raster extent as a Rect anchored at the origin.
func (r *Raster) Bounds() model.Rect {
	return model.NewRect(0, 0, r.Width(), r.Height())
}

// RGBA exposes the underlying image for encoding.
func (r *Raster) RGBA() *image.RGBA {
	return r.img
}

// Set writes an opaque RGB pixel. Intended for constructing synthetic
// rasters in tests.
func (r *Raster) Set(x, y int, red, green, blue uint8) {
	i := r.img.PixOffset(x, y)
	r.img.Pix[i] = red
	r.img.Pix[i+1] = green
	r.img.Pix[i+2] = blue
	r.img.Pix[i+3] = 0xff
}

// Gray converts the raster to a single-channel intensity image using the
// ITU-R 601 luma weights.
func (r *Raster) Gray() *image.Gray {
	w, h := r.Width(), r.Height()
	gray := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := r.img.Pix[y*r.img.Stride : y*r.img.Stride+w*4]
		dst := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for x := 0; x < w; x++ {
			red := uint32(src[x*4])
			green := uint32(src[x*4+1])
			blue := uint32(src[x*4+2])
			dst[x] = uint8((299*red + 587*green + 114*blue) / 1000)
		}
	}
	return gray
}

// Crop extracts the sub-raster covered by region. The region must be
// valid and within bounds; callers clamp before cropping. The returned
// Raster owns its own pixels.
func (r *Raster) Crop(region model.Rect) *Raster {
	clamped := region.Clamp(r.Width(), r.Height())
	dst := image.NewRGBA(image.Rect(0, 0, clamped.W, clamped.H))
	srcRect := image.Rect(clamped.Left(), clamped.Top(), clamped.Right(), clamped.Bottom())
	xdraw.Draw(dst, dst.Bounds(), r.img, srcRect.Min, xdraw.Src)
	return &Raster{img: dst}
}
