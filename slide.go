// Package ngr reads Hamamatsu NGR raw slide images as tile-addressable
// pyramid levels.
//
// NGR files are headerless, so the pyramid geometry comes from an external
// loader. Open a slide by building one Level descriptor per pyramid level
// and installing the backend on a handle:
//
//	s := ngr.NewSlide(nil)
//	defer s.Close()
//	if err := ngr.Install(s, levels); err != nil {
//	    log.Fatal(err)
//	}
//	img, err := s.ReadRegion(0, 0, 0, 512, 512)
//
// Decoded tiles are cached; see the tilecache package.
package ngr

import (
	"image"
	"sync"

	"github.com/mdouchement/ngr/tilecache"
)

// ops is the closed per-format operation set, selected once at
// construction and fixed for the life of the handle.
type ops interface {
	dimensions(level int32) (w, h int64)
	tileGeometry(level int32) (w, h int64)
	paintRegion(s *Slide, c *Canvas, x, y int64, level int32, w, h int32)
	destroy()
}

// A Slide is a handle to an open pyramid image. A format backend installs
// its operation set on the handle; see Install.
//
// A Slide may be used concurrently from multiple goroutines for different
// tile coordinates. Per-tile I/O failures do not fail the whole paint:
// they are recorded on the handle and the affected tile stays undrawn.
type Slide struct {
	ops        ops
	cache      *tilecache.Cache
	levelCount int32

	closeOnce sync.Once

	mu  sync.Mutex
	err error
}

// NewSlide returns an empty handle backed by the given tile cache. A nil
// cache gets a private cache with the default byte budget.
func NewSlide(cache *tilecache.Cache) *Slide {
	if cache == nil {
		cache = tilecache.New(0)
	}
	return &Slide{cache: cache}
}

// LevelCount returns the number of pyramid levels.
func (s *Slide) LevelCount() int32 {
	return s.levelCount
}

// Dimensions returns the pixel dimensions of a level. The level index must
// be in [0, LevelCount).
func (s *Slide) Dimensions(level int32) (w, h int64) {
	return s.ops.dimensions(level)
}

// TileGeometry returns the tile pixel dimensions of a level. The level
// index must be in [0, LevelCount).
func (s *Slide) TileGeometry(level int32) (w, h int64) {
	return s.ops.tileGeometry(level)
}

// Downsample returns the downsample factor of a level: the ratio of
// base-resolution pixels to one pixel at that level, averaged over both
// axes.
func (s *Slide) Downsample(level int32) float64 {
	w0, h0 := s.ops.dimensions(0)
	w, h := s.ops.dimensions(level)
	return (float64(w0)/float64(w) + float64(h0)/float64(h)) / 2
}

// PaintRegion composites the w x h region of the given level whose
// top-left corner is (x, y), expressed in base-resolution coordinates,
// onto c. Tiles that fail to decode stay undrawn; see Err.
func (s *Slide) PaintRegion(c *Canvas, x, y int64, level int32, w, h int32) {
	s.ops.paintRegion(s, c, x, y, level, w, h)
}

// ReadRegion paints a region onto a fresh canvas and returns the
// composited raster together with the handle error state.
func (s *Slide) ReadRegion(x, y int64, level int32, w, h int32) (*image.RGBA, error) {
	c := NewCanvas(int(w), int(h))
	s.PaintRegion(c, x, y, level, w, h)
	return c.Image(), s.Err()
}

// Cache returns the tile cache backing this handle.
func (s *Slide) Cache() *tilecache.Cache {
	return s.cache
}

// Err returns the first error recorded on the handle, or nil.
func (s *Slide) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// setErr records err on the handle. Only the first error is kept.
func (s *Slide) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Close releases the backend's descriptors. Close is terminal: the handle
// must not be used afterwards. Calling Close again is a no-op.
func (s *Slide) Close() {
	s.closeOnce.Do(func() {
		if s.ops != nil {
			s.ops.destroy()
		}
	})
}
