package ngr

// An NGR file is headerless: it is a bare run of pixel data whose byte
// offset, dimensions and column width are supplied by an external loader
// (for Hamamatsu VMU slides, the map file shipped next to the image data).
//
// Pixels are stored in tile columns: every tile of one column is laid out
// on disk, top to bottom, before the next column begins. Each pixel is
// three little-endian 16-bit samples (R, G, B) carrying 12 significant
// bits each.

const (
	// TileHeight is the fixed tile height in pixels, shared by every
	// pyramid level. The tile width is the level's column width.
	TileHeight = 64

	// bytesPerPixel is the on-disk pixel size: 3 samples x 2 bytes.
	bytesPerPixel = 6
)
