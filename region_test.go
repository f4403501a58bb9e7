package ngr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRegionSpansPartialTiles(t *testing.T) {
	l := &Level{Width: 160, Height: 100, ColumnWidth: 16}

	// One extra pixel past two full tiles on each axis pulls in the
	// partially covered trailing tile.
	r := resolveRegion(l, 0, 0, 2*16+1, TileHeight+1, 1)

	assert.Equal(t, int64(0), r.startX)
	assert.Equal(t, int64(3), r.endX)
	assert.Equal(t, int64(0), r.startY)
	assert.Equal(t, int64(2), r.endY)
	assert.Equal(t, 0.0, r.offsetX)
	assert.Equal(t, 0.0, r.offsetY)
}

func TestResolveRegionExactTiles(t *testing.T) {
	l := &Level{Width: 160, Height: 128, ColumnWidth: 16}

	r := resolveRegion(l, 16, TileHeight, 32, TileHeight, 1)

	assert.Equal(t, int64(1), r.startX)
	assert.Equal(t, int64(3), r.endX)
	assert.Equal(t, int64(1), r.startY)
	assert.Equal(t, int64(2), r.endY)
	assert.Equal(t, 0.0, r.offsetX)
	assert.Equal(t, 0.0, r.offsetY)
}

func TestResolveRegionOffsets(t *testing.T) {
	l := &Level{Width: 64, Height: 200, ColumnWidth: 8}

	r := resolveRegion(l, 12, 70, 4, 4, 1)

	assert.Equal(t, int64(1), r.startX)
	assert.Equal(t, 4.0, r.offsetX)
	assert.Equal(t, int64(1), r.startY)
	assert.Equal(t, 6.0, r.offsetY)
}

func TestResolveRegionAlignment(t *testing.T) {
	// At downsample 2, the resolved origin startTileX*W + offsetX must
	// land exactly on the level-local x coordinate.
	for _, w := range []int64{8, 16, 64, 256} {
		l := &Level{Width: 4 * w, Height: 200, ColumnWidth: w}

		r := resolveRegion(l, w, 0, 10, 10, 2)
		assert.Equal(t, float64(w/2), float64(r.startX*w)+r.offsetX, "column width %d", w)
	}
}

func TestResolveRegionOutsideIsWellFormed(t *testing.T) {
	l := &Level{Width: 32, Height: 100, ColumnWidth: 8}

	r := resolveRegion(l, 1000, 1000, 8, 8, 1)

	// The range is well formed even though every coordinate in it is
	// out of the tile grid.
	assert.Equal(t, int64(125), r.startX)
	assert.Equal(t, int64(126), r.endX)
	assert.LessOrEqual(t, r.startY, r.endY)
	assert.GreaterOrEqual(t, r.offsetX, 0.0)
}

func TestReadTilesOrderAndTranslation(t *testing.T) {
	type call struct {
		tileX, tileY           int64
		translateX, translateY float64
	}
	var calls []call

	readTiles(nil, 0, 1, 2, 3, 4, 4.0, 6.0, 8.0, 64.0,
		func(_ *Canvas, _ int32, tileX, tileY int64, translateX, translateY float64) {
			calls = append(calls, call{tileX, tileY, translateX, translateY})
		})

	require.Len(t, calls, 4)
	assert.Equal(t, call{1, 2, -4, -6}, calls[0])
	assert.Equal(t, call{2, 2, 4, -6}, calls[1])
	assert.Equal(t, call{1, 3, -4, 58}, calls[2])
	assert.Equal(t, call{2, 3, 4, 58}, calls[3])
}

func TestReadTilesDegenerateRange(t *testing.T) {
	invoked := false
	readTiles(nil, 0, 5, 5, 5, 5, 0, 0, 8, 64,
		func(_ *Canvas, _ int32, _, _ int64, _, _ float64) {
			invoked = true
		})
	assert.False(t, invoked)
}
