package ngr

import (
	"fmt"
	"math"

	"github.com/mdouchement/ngr/tilecache"
)

// backend implements the operation set for the NGR raw scanner layout.
type backend struct {
	levels []*Level
}

// Install validates the descriptors, takes ownership of the slice and
// installs the NGR operation set on s. The descriptors must not be used by
// the caller afterwards.
//
// Passing a nil handle disposes the descriptors and aborts without error.
// Installing on a handle that already has a backend is a programming error
// and panics.
func Install(s *Slide, levels []*Level) error {
	if err := validateLevels(levels); err != nil {
		releaseLevels(levels)
		return err
	}
	if s == nil {
		releaseLevels(levels)
		return nil
	}
	if s.ops != nil {
		panic("ngr: backend already installed on this handle")
	}

	s.ops = &backend{levels: levels}
	s.levelCount = int32(len(levels))
	return nil
}

func validateLevels(levels []*Level) error {
	if len(levels) == 0 {
		return FormatError("no pyramid levels")
	}
	for i, l := range levels {
		switch {
		case l == nil:
			return FormatError(fmt.Sprintf("level %d: missing descriptor", i))
		case l.Filename == "":
			return FormatError(fmt.Sprintf("level %d: missing filename", i))
		case l.Start < 0:
			return FormatError(fmt.Sprintf("level %d: negative data offset", i))
		case l.Width <= 0 || l.Height <= 0:
			return FormatError(fmt.Sprintf("level %d: dimensions %dx%d", i, l.Width, l.Height))
		case l.ColumnWidth <= 0 || l.ColumnWidth > l.Width:
			return FormatError(fmt.Sprintf("level %d: column width %d", i, l.ColumnWidth))
		}
	}
	return nil
}

func (n *backend) dimensions(level int32) (w, h int64) {
	l := n.levels[level]
	return l.Width, l.Height
}

func (n *backend) tileGeometry(level int32) (w, h int64) {
	l := n.levels[level]
	return l.ColumnWidth, TileHeight
}

func (n *backend) destroy() {
	releaseLevels(n.levels)
	n.levels = nil
}

// paintRegion resolves the viewport into a tile range once, then lets the
// tile driver call back for every coordinate in range.
func (n *backend) paintRegion(s *Slide, c *Canvas, x, y int64, level int32, w, h int32) {
	l := n.levels[level]

	r := resolveRegion(l, x, y, w, h, s.Downsample(level))

	readTiles(c, level,
		r.startX, r.startY, r.endX, r.endY,
		r.offsetX, r.offsetY,
		float64(l.ColumnWidth), TileHeight,
		func(c *Canvas, level int32, tileX, tileY int64, translateX, translateY float64) {
			n.readTile(s, c, level, tileX, tileY, translateX, translateY)
		})
}

// A tileRange is the half-open range of tiles covering a viewport on each
// axis, plus the sub-tile alignment of the viewport origin within the
// first tile.
type tileRange struct {
	startX, startY   int64
	endX, endY       int64
	offsetX, offsetY float64
}

// resolveRegion maps a viewport, given in base-resolution coordinates,
// onto l's tile grid. downsample is the level's pixels-per-level-pixel
// ratio. The ceiling on the end bounds keeps a partially covered trailing
// tile inside the range. A viewport fully outside the level still yields a
// well-formed, possibly degenerate, range.
func resolveRegion(l *Level, x, y int64, w, h int32, downsample float64) tileRange {
	dsX := float64(x) / downsample
	dsY := float64(y) / downsample

	startX := int64(dsX / float64(l.ColumnWidth))
	startY := int64(dsY / TileHeight)

	return tileRange{
		startX:  startX,
		startY:  startY,
		endX:    int64(math.Ceil((dsX + float64(w)) / float64(l.ColumnWidth))),
		endY:    int64(math.Ceil((dsY + float64(h)) / TileHeight)),
		offsetX: dsX - float64(startX*l.ColumnWidth),
		offsetY: dsY - float64(startY*TileHeight),
	}
}

// readTile paints one tile, decoding it on a cache miss. An out-of-range
// coordinate is a defined no-op, not an error. An I/O failure is recorded
// on the handle and leaves the tile undrawn; the tile is painted fully or
// not at all.
func (n *backend) readTile(s *Slide, c *Canvas, level int32, tileX, tileY int64, translateX, translateY float64) {
	l := n.levels[level]

	if !l.contains(tileX, tileY) {
		return
	}
	tw, th := l.tileExtent(tileY)

	key := tilecache.Key{X: tileX, Y: tileY, Level: level}
	ref, ok := s.cache.Get(key)
	if !ok {
		data, err := decodeTile(l, tileX, tileY)
		if err != nil {
			s.setErr(err)
			return
		}
		ref = s.cache.Put(key, data)
	}
	defer ref.Release()

	c.DrawTile(ref.Data(), tw, th, translateX, translateY)
}
