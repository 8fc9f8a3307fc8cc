package geometry

import (
	"math"

	"github.com/tmayes/go-orbit-tracer/pkg/core"
)

// Plane is an infinite plane defined by a point and a normal
type Plane struct {
	Point  core.Vec3
	Normal core.Vec3 // unit length, normalized by the constructor
	Albedo core.Vec3
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, albedo core.Vec3) *Plane {
	return &Plane{Point: point, Normal: normal.Normalize(), Albedo: albedo}
}

// Intersect tests the ray against the plane
func (p *Plane) Intersect(ray core.Ray) (float64, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return 0, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= 0 {
		return 0, false
	}

	return t, true
}

// NormalAt returns the plane normal regardless of the query point
func (p *Plane) NormalAt(point core.Vec3) core.Vec3 {
	return p.Normal
}

// Colour returns the plane's diffuse albedo
func (p *Plane) Colour() core.Vec3 {
	return p.Albedo
}
