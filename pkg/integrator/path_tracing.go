// Package integrator implements the per-pixel light transport computation:
// an iterative unidirectional path tracer with deterministic low-discrepancy
// sampling. ComputeSample is a pure function of its inputs and is safe to
// call concurrently from any number of goroutines against a read-only scene.
package integrator

import (
	"math"

	"github.com/tmayes/go-orbit-tracer/pkg/core"
	"github.com/tmayes/go-orbit-tracer/pkg/sampler"
	"github.com/tmayes/go-orbit-tracer/pkg/scene"
)

// Fixed lighting constants. The light intensity is an arbitrary brightness
// scale tuned for the demo scenes, not a physically derived quantity.
const (
	maxBounces     = 3
	lightIntensity = 420.0
)

var (
	lightPos = core.NewVec3(8, 12, -6)

	// Two-tone sky gradient, interpolated by the upward component of the
	// ray direction. A cheap ambient term, not a sky model.
	skyZenith  = core.NewVec3(0.02, 0.05, 0.1).Multiply(2)
	skyHorizon = core.NewVec3(0.05, 0.07, 0.1).Multiply(2)
)

// SkyColor returns the environment radiance for a ray leaving the scene in
// the given unit direction.
func SkyColor(direction core.Vec3) core.Vec3 {
	t := math.Max(0, direction.Y)
	return skyHorizon.Add(skyZenith.Subtract(skyHorizon).Multiply(t))
}

// PathTracer computes pixel color samples for an animated camera orbiting a
// static scene. The zero cost of construction reflects its statelessness:
// it holds only the camera projection derived from the image dimensions.
type PathTracer struct {
	camera      OrbitCamera
	width       int
	height      int
	totalFrames int
}

// NewPathTracer creates a path tracer for the given image size and frame
// count. Width and height must be positive; a totalFrames of zero or less
// renders a static camera.
func NewPathTracer(width, height, totalFrames int) *PathTracer {
	return &PathTracer{
		camera:      NewOrbitCamera(width, height, totalFrames),
		width:       width,
		height:      height,
		totalFrames: totalFrames,
	}
}

// ComputeSample returns one radiance sample for pixel (x, y) at the given
// animation frame and pass index. Averaged over passes the samples converge
// to the pixel's radiance. Deterministic: identical arguments yield
// bit-identical results.
func (pt *PathTracer) ComputeSample(x, y, frame, pass int, world *scene.Scene) core.Vec3 {
	pixelSampler := sampler.NewPixelSampler(x, y, frame, pass, pt.width, pt.height)
	sampleX, sampleY, sampleT := pixelSampler.PixelSamples()

	ray := pt.camera.Ray(frame, x, y, sampleX, sampleY, sampleT)

	throughput := core.NewVec3(1, 1, 1)
	contribution := core.NewVec3(0, 0, 0)

	bounce := 0
	for {
		hitObj, hitT := world.NearestIntersection(ray)

		// Ray left the scene: pick up the sky and terminate
		if hitObj == nil {
			contribution = contribution.Add(throughput.MultiplyVec(SkyColor(ray.Direction)))
			break
		}

		hitPoint := ray.At(hitT)
		normal := hitObj.NormalAt(hitPoint)

		// Direct lighting from the fixed point light: Lambertian term with
		// inverse-square falloff, gated by a shadow ray. The light is
		// unoccluded if the shadow ray hits nothing or only geometry at or
		// beyond the light itself.
		lightVec := lightPos.Subtract(hitPoint)
		lightDistSq := lightVec.Dot(lightVec)
		lightDist := math.Sqrt(lightDistSq)
		lightDir := lightVec.Multiply(1 / lightDist)

		nDotL := normal.Dot(lightDir)
		reflected := hitObj.Colour().Multiply(math.Max(0, nDotL) / lightDistSq * lightIntensity)

		shadowRay := core.NewRay(hitPoint, lightDir)
		shadowObj, shadowT := world.NearestIntersection(shadowRay)
		if shadowObj == nil || shadowT >= lightDist {
			contribution = contribution.Add(throughput.MultiplyVec(reflected))
		}

		bounce++
		if bounce > maxBounces {
			break
		}

		reflSampleX, reflSampleY := pixelSampler.BounceSamples(bounce)

		// Uniform point on the unit sphere via the spherical area
		// parameterization, https://mathworld.wolfram.com/SpherePointPicking.html
		azimuth := reflSampleX * 2 * math.Pi
		radius := 2 * math.Sqrt(math.Max(0, reflSampleY*(1-reflSampleY)))
		spherePoint := core.NewVec3(
			math.Cos(azimuth)*radius,
			math.Sin(azimuth)*radius,
			1-2*reflSampleY,
		)

		// normal + uniform sphere point, normalized, is a cosine-weighted
		// direction around the normal. The cosine pdf cancels against the
		// Lambertian cosine, so throughput picks up only the albedo.
		scatterDir := normal.Add(spherePoint).Normalize()
		throughput = throughput.MultiplyVec(hitObj.Colour())

		ray = core.NewRay(hitPoint, scatterDir)
	}

	return contribution
}
