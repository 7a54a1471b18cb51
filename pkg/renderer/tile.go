package renderer

import "image"

// DefaultTileSize is the tile edge length used when none is configured
const DefaultTileSize = 16

// TileGrid splits an image into row-major tiles. Tiles on the right and
// bottom edges are clipped to the image, so the grid is an exact disjoint
// cover.
type TileGrid struct {
	Width, Height         int // Image size in pixels
	TileWidth, TileHeight int
	TilesPerRow           int
	TilesPerCol           int
	TileCount             int
}

// NewTileGrid creates the tile geometry for an image. Tile sizes <= 0 fall
// back to DefaultTileSize.
func NewTileGrid(width, height, tileWidth, tileHeight int) TileGrid {
	if tileWidth <= 0 {
		tileWidth = DefaultTileSize
	}
	if tileHeight <= 0 {
		tileHeight = DefaultTileSize
	}
	width = max(width, 0)
	height = max(height, 0)

	// Ceiling division
	tilesPerRow := (width + tileWidth - 1) / tileWidth
	tilesPerCol := (height + tileHeight - 1) / tileHeight

	return TileGrid{
		Width:       width,
		Height:      height,
		TileWidth:   tileWidth,
		TileHeight:  tileHeight,
		TilesPerRow: tilesPerRow,
		TilesPerCol: tilesPerCol,
		TileCount:   tilesPerRow * tilesPerCol,
	}
}

// Bounds returns the pixel rectangle of tile i
func (g TileGrid) Bounds(i int) image.Rectangle {
	x0 := (i % g.TilesPerRow) * g.TileWidth
	y0 := (i / g.TilesPerRow) * g.TileHeight
	x1 := min(x0+g.TileWidth, g.Width) // Don't exceed image bounds
	y1 := min(y0+g.TileHeight, g.Height)
	return image.Rect(x0, y0, x1, y1)
}

// Tiles returns the bounds of every tile in claim order
func (g TileGrid) Tiles() []image.Rectangle {
	tiles := make([]image.Rectangle, g.TileCount)
	for i := range tiles {
		tiles[i] = g.Bounds(i)
	}
	return tiles
}
