package ngr

// A tileFunc decodes and draws one tile at the given destination
// translation on the canvas.
type tileFunc func(c *Canvas, level int32, tileX, tileY int64, translateX, translateY float64)

// readTiles walks the half-open tile range row by row and invokes fn once
// per tile coordinate. The translation handed to fn aligns the tile grid
// with the requested origin: tiles advance by (advanceX, advanceY) pixels
// and the whole grid is shifted back by the sub-tile offsets.
func readTiles(c *Canvas, level int32,
	startTileX, startTileY, endTileX, endTileY int64,
	offsetX, offsetY float64,
	advanceX, advanceY float64,
	fn tileFunc) {

	for tileY := startTileY; tileY < endTileY; tileY++ {
		for tileX := startTileX; tileX < endTileX; tileX++ {
			translateX := float64(tileX-startTileX)*advanceX - offsetX
			translateY := float64(tileY-startTileY)*advanceY - offsetY
			fn(c, level, tileX, tileY, translateX, translateY)
		}
	}
}
