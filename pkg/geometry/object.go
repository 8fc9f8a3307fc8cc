package geometry

import "github.com/tmayes/go-orbit-tracer/pkg/core"

// RayEpsilon is the minimum accepted hit distance. Hits at or below it are
// rejected to avoid self-intersection from a ray originating on a surface.
const RayEpsilon = 1e-4

// Object is the capability set the renderer requires of scene geometry.
// Implementations must be safe for concurrent read-only use: rendering calls
// these from many goroutines with no locking.
type Object interface {
	// Intersect returns the distance along the ray to the nearest
	// intersection, or ok=false if the ray misses.
	Intersect(ray core.Ray) (t float64, ok bool)

	// NormalAt returns the unit surface normal at a point on the object.
	NormalAt(point core.Vec3) core.Vec3

	// Colour returns the object's diffuse albedo, non-negative per channel.
	Colour() core.Vec3
}
