package renderer

import "image"

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int
	Bounds image.Rectangle
}

// NewTileGrid creates a grid of tiles covering the entire image.
// Edge tiles are clipped to the image bounds.
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile

	id := 0
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			bounds := image.Rect(x, y, min(x+tileSize, width), min(y+tileSize, height))
			tiles = append(tiles, &Tile{ID: id, Bounds: bounds})
			id++
		}
	}

	return tiles
}
