package renderer

import (
	"time"

	"github.com/tmayes/go-orbit-tracer/pkg/core"
)

// RenderStats contains statistics about a completed pass
type RenderStats struct {
	TotalPixels  int           // Number of pixels rendered
	TotalSamples int           // Samples taken across all pixels in this pass
	PassNumber   int           // 1-based pass number
	Elapsed      time.Duration // Wall time for the pass
}

// PixelStats accumulates color samples for a single pixel across passes
type PixelStats struct {
	ColorAccum  core.Vec3 // Running sum of radiance samples
	SampleCount int       // Number of samples accumulated
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Reset clears the accumulator, used between animation frames
func (ps *PixelStats) Reset() {
	ps.ColorAccum = core.Vec3{}
	ps.SampleCount = 0
}
