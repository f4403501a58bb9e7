package ngr

import (
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
)

// decodeTile reads and converts one tile of l. An out-of-range coordinate
// decodes to nothing: a nil buffer and a nil error. Open and read failures
// are recoverable at tile granularity; no other tile is affected.
func decodeTile(l *Level, tileX, tileY int64) ([]uint32, error) {
	if !l.contains(tileX, tileY) {
		return nil, nil
	}
	tw, th := l.tileExtent(tileY)

	f, err := os.Open(l.Filename)
	if err != nil {
		return nil, errors.Wrapf(err, "ngr: cannot open file %s", l.Filename)
	}
	defer f.Close()

	offset := l.tileOffset(tileX, tileY)
	Logger().Debug("ngr: decode tile",
		"x", tileX, "y", tileY, "offset", offset, "width", tw, "height", th)

	raw := make([]byte, tw*th*bytesPerPixel)
	if _, err := f.ReadAt(raw, offset); err != nil {
		return nil, errors.Wrapf(err, "ngr: cannot read file %s", l.Filename)
	}

	return convertTile(raw, tw*th), nil
}

// convertTile converts n pixels of raw little-endian 16-bit RGB samples to
// packed 8-bit xRGB words. Each sample carries 12 significant bits; the
// low four bits are dropped, truncating, not rounding.
func convertTile(raw []byte, n int64) []uint32 {
	data := make([]uint32, n)
	for i := range data {
		p := raw[i*bytesPerPixel:]
		r := uint32(uint8(binary.LittleEndian.Uint16(p[0:2]) >> 4))
		g := uint32(uint8(binary.LittleEndian.Uint16(p[2:4]) >> 4))
		b := uint32(uint8(binary.LittleEndian.Uint16(p[4:6]) >> 4))
		data[i] = r<<16 | g<<8 | b
	}
	return data
}
