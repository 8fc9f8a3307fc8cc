package integrator

import (
	"math"

	"github.com/tmayes/go-orbit-tracer/pkg/core"
)

// Field of view and orbit shape are fixed design constants; changing them
// changes what every scene looks like, so they are not configurable.
const (
	fovDegrees = 80.0
)

var (
	cameraLookAt = core.NewVec3(0, 0, 0)
	worldUp      = core.NewVec3(0, 1, 0)
)

// OrbitCamera generates primary rays for a camera circling the world origin.
// The orbit position is a function of the frame index, so the camera carries
// no per-frame state of its own.
type OrbitCamera struct {
	width, height int
	totalFrames   int
	sensorWidth   float64
	sensorHeight  float64
}

// NewOrbitCamera creates a camera for the given image size and frame count.
// Width and height must be positive.
func NewOrbitCamera(width, height, totalFrames int) OrbitCamera {
	aspectRatio := float64(width) / float64(height)
	fovRadians := fovDegrees * math.Pi / 180
	sensorWidth := 2 * math.Tan(fovRadians/2)

	return OrbitCamera{
		width:        width,
		height:       height,
		totalFrames:  totalFrames,
		sensorWidth:  sensorWidth,
		sensorHeight: sensorWidth / aspectRatio,
	}
}

// Ray produces the primary ray for pixel (x, y) at the given frame.
// sampleX and sampleY jitter the sub-pixel position; sampleT jitters the
// orbit time within the frame for motion blur. All three are in [0, 1).
func (c OrbitCamera) Ray(frame, x, y int, sampleX, sampleY, sampleT float64) core.Ray {
	// Static single-frame render when no frame count is given
	time := 0.0
	if c.totalFrames > 0 {
		time = 2 * math.Pi * (float64(frame) + sampleT) / float64(c.totalFrames)
	}
	cosT := math.Cos(time)
	sinT := math.Sin(time)

	camPos := core.NewVec3(4*cosT+10*sinT, 5, -10*cosT+4*sinT).Multiply(0.25)
	camForward := cameraLookAt.Subtract(camPos).Normalize()
	camRight := worldUp.Cross(camForward)
	camUp := camForward.Cross(camRight)

	// Vertical step is negated: pixel rows grow downward, sensor y grows up
	pixelX := camRight.Multiply(c.sensorWidth / float64(c.width))
	pixelY := camUp.Multiply(-c.sensorHeight / float64(c.height))

	direction := camForward.
		Add(pixelX.Multiply(float64(x) - float64(c.width)*0.5 + sampleX)).
		Add(pixelY.Multiply(float64(y) - float64(c.height)*0.5 + sampleY))

	return core.NewRay(camPos, direction.Normalize())
}
