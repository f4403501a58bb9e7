package ngr

import (
	"image"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// A Canvas is the compositing target for painted regions. Draws are
// clipped to its bounds; pixels no tile covers keep zero alpha.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas returns a w x h canvas, initially fully transparent.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Image returns the canvas raster. Subsequent draws keep writing into it.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// DrawTile composites a packed 0x00RRGGBB raster of w x h pixels onto the
// canvas with its top-left corner at (translateX, translateY). The
// translation may be fractional. The raster is opaque: it replaces every
// destination pixel it covers, and only those.
func (c *Canvas) DrawTile(data []uint32, w, h int64, translateX, translateY float64) {
	src := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for i, px := range data {
		o := i * 4
		src.Pix[o] = uint8(px >> 16)
		src.Pix[o+1] = uint8(px >> 8)
		src.Pix[o+2] = uint8(px)
		src.Pix[o+3] = 0xff
	}

	m := f64.Aff3{
		1, 0, translateX,
		0, 1, translateY,
	}
	xdraw.NearestNeighbor.Transform(c.img, m, src, src.Bounds(), xdraw.Src, nil)
}
