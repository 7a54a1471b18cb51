package renderer

import "github.com/df07/go-interactive-pathtracer/pkg/core"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Frame          uint32  // Frame index of the most recent dispatch
	Passes         int     // Passes dispatched since start, across camera resets
	CameraResets   int     // Times accumulation restarted after a camera move
	TotalPixels    int     // Total number of pixels in the image
	TotalSamples   int     // Total number of samples in the image
	AverageSamples float64 // Average samples per pixel
	MinSamples     int     // Minimum samples taken by any pixel
	MaxSamplesUsed int     // Maximum samples actually used by any pixel
	AverageLum     float64 // Mean luminance of the resolved image
}

// CalculateStats computes sample and luminance statistics for a set of pixels
func CalculateStats(pixels []Pixel) RenderStats {
	stats := RenderStats{TotalPixels: len(pixels)}
	if len(pixels) == 0 {
		return stats
	}

	stats.MinSamples = int(pixels[0].Samples)
	var lumSum float64
	for _, p := range pixels {
		samples := int(p.Samples)
		stats.TotalSamples += samples
		stats.MinSamples = min(stats.MinSamples, samples)
		stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samples)
		lumSum += float64(core.Luminance(p.Resolve()))
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	stats.AverageLum = lumSum / float64(stats.TotalPixels)
	return stats
}
