package geometry

import (
	"math"

	"github.com/tmayes/go-orbit-tracer/pkg/core"
)

// Sphere is a scene object defined by a center and radius
type Sphere struct {
	Center core.Vec3
	Radius float64
	Albedo core.Vec3
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, albedo core.Vec3) *Sphere {
	return &Sphere{Center: center, Radius: radius, Albedo: albedo}
}

// Intersect tests the ray against the sphere and returns the nearest positive
// hit distance
func (s *Sphere) Intersect(ray core.Ray) (float64, bool) {
	// Quadratic equation coefficients: at² + bt + c = 0, using half-b
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= 0 {
		root = (-halfB + sqrtD) / a
		if root <= 0 {
			return 0, false
		}
	}

	return root, true
}

// NormalAt returns the outward unit normal at a point on the sphere surface
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Multiply(1.0 / s.Radius)
}

// Colour returns the sphere's diffuse albedo
func (s *Sphere) Colour() core.Vec3 {
	return s.Albedo
}
