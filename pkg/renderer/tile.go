package renderer

import (
	"fmt"
	"image"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// renderBounds traces one primary ray through the center of every pixel in bounds
func (t *Tracer) renderBounds(bounds image.Rectangle, img *Image) (RenderStats, error) {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			xNorm := (float64(x)+0.5)/float64(img.Width)*2 - 1
			yNorm := (float64(y)+0.5)/float64(img.Height)*2 - 1
			ray := t.camera.GenerateRay(xNorm, yNorm)

			color, hit, err := t.trace(ray, t.settings.MaxBounces)
			if err != nil {
				return stats, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
			}
			if hit {
				stats.PrimaryHits++
			}
			img.SetPixel(x, y, color)
		}
	}
	return stats, nil
}
