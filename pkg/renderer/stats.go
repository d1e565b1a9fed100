package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	PrimaryHits int           // Primary rays that hit geometry
	Tiles       int           // Tiles rendered
	Workers     int           // Parallel workers used
	Elapsed     time.Duration // Wall-clock render time
}

// Merge accumulates the per-pixel counters of other
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.PrimaryHits += other.PrimaryHits
	s.Tiles++
}

// HitRatio returns the fraction of primary rays that hit geometry
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.PrimaryHits) / float64(s.TotalPixels)
}
