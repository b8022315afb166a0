package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TileSize is the edge length in pixels of one level grid cell.
	TileSize = 32
)
