package ngr

// Resources:
// https://openslide.org/formats/hamamatsu/ (VMU / NGR layout)

// A Level describes one pyramid level of an NGR image. Levels are built by
// an external loader and handed to Install, which takes ownership of them.
// A Level is immutable once installed.
type Level struct {
	// Filename is the path of the file holding this level's pixel data.
	Filename string

	// Start is the byte offset within Filename where pixel data begins.
	Start int64

	// Width and Height are the level dimensions in pixels.
	Width  int64
	Height int64

	// ColumnWidth is the width in pixels of one tile column.
	ColumnWidth int64
}

// columns returns the number of tile columns. The division truncates: a
// trailing partial column is dropped. tileOffset assumes this exact count,
// so the truncation must not be rounded.
func (l *Level) columns() int64 {
	return l.Width / l.ColumnWidth
}

// rows returns the number of tile rows.
func (l *Level) rows() int64 {
	return (l.Height + TileHeight - 1) / TileHeight
}

// contains reports whether (tileX, tileY) addresses a tile within the
// level's tile grid.
func (l *Level) contains(tileX, tileY int64) bool {
	return tileX >= 0 && tileX < l.columns() && tileY >= 0 && tileY < l.rows()
}

// tileExtent returns the pixel size of a tile in row tileY. The final row
// of tiles may be shorter than TileHeight.
func (l *Level) tileExtent(tileY int64) (tw, th int64) {
	return l.ColumnWidth, minInt64(TileHeight, l.Height-tileY*TileHeight)
}

// tileOffset returns the byte offset of tile (tileX, tileY) within the
// level's file. Entire tile columns are contiguous on disk, so the column
// term scales with the full image height, not rows()*TileHeight.
func (l *Level) tileOffset(tileX, tileY int64) int64 {
	return l.Start +
		tileY*TileHeight*l.ColumnWidth*bytesPerPixel +
		tileX*l.Height*l.ColumnWidth*bytesPerPixel
}

// releaseLevels disposes a descriptor slice. The descriptors must not be
// used afterwards.
func releaseLevels(levels []*Level) {
	for i, l := range levels {
		if l != nil {
			l.Filename = ""
		}
		levels[i] = nil
	}
}
