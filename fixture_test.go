package ngr

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleAt returns the deterministic 12-bit sample of channel ch at level
// pixel (x, y). Fixtures and assertions both derive pixels from it.
func sampleAt(x, y int64, ch int) uint16 {
	return uint16((x*131 + y*31 + int64(ch)*7) & 0xfff)
}

// expectedWord returns the packed xRGB word decodeTile must produce for
// level pixel (x, y).
func expectedWord(x, y int64) uint32 {
	r := uint32(uint8(sampleAt(x, y, 0) >> 4))
	g := uint32(uint8(sampleAt(x, y, 1) >> 4))
	b := uint32(uint8(sampleAt(x, y, 2) >> 4))
	return r<<16 | g<<8 | b
}

// testLevel returns a level descriptor pointing into dir, without writing
// the pixel file.
func testLevel(dir string, w, h, columnWidth, start int64) *Level {
	return &Level{
		Filename:    filepath.Join(dir, "level.ngr"),
		Start:       start,
		Width:       w,
		Height:      h,
		ColumnWidth: columnWidth,
	}
}

// writeLevel writes the synthetic pixel file for l: tile columns laid out
// contiguously, tiles within a column top to bottom, samples from
// sampleAt. Trailing partial columns are not written, matching the
// truncating column count.
func writeLevel(t *testing.T, l *Level) {
	t.Helper()

	var out bytes.Buffer
	out.Write(make([]byte, l.Start))

	var sample [2]byte
	for tileX := int64(0); tileX < l.columns(); tileX++ {
		for tileY := int64(0); tileY < l.rows(); tileY++ {
			tw, th := l.tileExtent(tileY)
			for py := int64(0); py < th; py++ {
				for px := int64(0); px < tw; px++ {
					x := tileX*l.ColumnWidth + px
					y := tileY*TileHeight + py
					for ch := 0; ch < 3; ch++ {
						binary.LittleEndian.PutUint16(sample[:], sampleAt(x, y, ch))
						out.Write(sample[:])
					}
				}
			}
		}
	}

	require.NoError(t, os.WriteFile(l.Filename, out.Bytes(), 0o644))
}

// truncateLevel chops n bytes off the end of l's pixel file.
func truncateLevel(t *testing.T, l *Level, n int64) {
	t.Helper()

	fi, err := os.Stat(l.Filename)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(l.Filename, fi.Size()-n))
}
