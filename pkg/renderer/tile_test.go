package renderer

import (
	"testing"
)

func TestNewTileGrid(t *testing.T) {
	// Test tile grid generation for a 400x225 image with 64x64 tiles
	width, height, tileSize := 400, 225, 64
	tiles := NewTileGrid(width, height, tileSize)

	expectedTilesX := (width + tileSize - 1) / tileSize   // 7 tiles
	expectedTilesY := (height + tileSize - 1) / tileSize  // 4 tiles
	expectedTotalTiles := expectedTilesX * expectedTilesY // 28 tiles

	if len(tiles) != expectedTotalTiles {
		t.Errorf("Expected %d tiles, got %d", expectedTotalTiles, len(tiles))
	}

	// Test that tiles cover the entire image without gaps or overlaps
	covered := make([][]bool, height)
	for y := range covered {
		covered[y] = make([]bool, width)
	}

	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				if x >= width || y >= height {
					t.Errorf("Tile %d extends beyond image bounds at (%d,%d)", tile.ID, x, y)
					continue
				}
				if covered[y][x] {
					t.Errorf("Pixel (%d,%d) is covered by multiple tiles", x, y)
				}
				covered[y][x] = true
			}
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !covered[y][x] {
				t.Errorf("Pixel (%d,%d) is not covered by any tile", x, y)
			}
		}
	}
}

func TestRenderStats_Merge(t *testing.T) {
	var stats RenderStats
	stats.Merge(RenderStats{TotalPixels: 10, PrimaryHits: 4})
	stats.Merge(RenderStats{TotalPixels: 10, PrimaryHits: 6})

	if stats.Tiles != 2 || stats.TotalPixels != 20 || stats.PrimaryHits != 10 {
		t.Errorf("Unexpected merged stats %+v", stats)
	}
	if stats.HitRatio() != 0.5 {
		t.Errorf("Expected hit ratio 0.5, got %f", stats.HitRatio())
	}
	if (RenderStats{}).HitRatio() != 0 {
		t.Error("Empty stats should have zero hit ratio")
	}
}
