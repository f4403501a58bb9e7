package ngr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasDrawTile(t *testing.T) {
	c := NewCanvas(4, 4)
	c.DrawTile([]uint32{
		0x00112233, 0x00445566,
		0x00778899, 0x00aabbcc,
	}, 2, 2, 1, 1)

	img := c.Image()

	// Covered pixels are replaced and opaque.
	o := img.PixOffset(1, 1)
	assert.Equal(t, []uint8{0x11, 0x22, 0x33, 0xff}, img.Pix[o:o+4])
	o = img.PixOffset(2, 2)
	assert.Equal(t, []uint8{0xaa, 0xbb, 0xcc, 0xff}, img.Pix[o:o+4])

	// Pixels outside the tile stay untouched.
	o = img.PixOffset(0, 0)
	assert.EqualValues(t, 0, img.Pix[o+3])
	o = img.PixOffset(3, 3)
	assert.EqualValues(t, 0, img.Pix[o+3])
}

func TestCanvasDrawTileClipped(t *testing.T) {
	c := NewCanvas(2, 2)

	require.NotPanics(t, func() {
		c.DrawTile([]uint32{1, 2, 3, 4}, 2, 2, -1, -1)
		c.DrawTile([]uint32{1, 2, 3, 4}, 2, 2, 3, 3)
	})

	// Only the overlapping quarter of the first draw landed.
	img := c.Image()
	o := img.PixOffset(0, 0)
	assert.Equal(t, []uint8{0, 0, 4, 0xff}, img.Pix[o:o+4])
	o = img.PixOffset(1, 1)
	assert.EqualValues(t, 0, img.Pix[o+3])
}

func TestCanvasImage(t *testing.T) {
	c := NewCanvas(3, 5)
	img := c.Image()
	require.NotNil(t, img)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 5, img.Bounds().Dy())
}
