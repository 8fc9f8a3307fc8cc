// Package scene holds the object collection the renderer traces against.
package scene

import (
	"math"

	"github.com/tmayes/go-orbit-tracer/pkg/core"
	"github.com/tmayes/go-orbit-tracer/pkg/geometry"
)

// Scene is an ordered collection of scene objects. It is read-only during
// rendering and safe to share across any number of rendering goroutines.
type Scene struct {
	Objects []geometry.Object
}

// NewScene creates a scene from a set of objects
func NewScene(objects ...geometry.Object) *Scene {
	return &Scene{Objects: objects}
}

// Add appends objects to the scene. Must not be called while a render is in
// flight.
func (s *Scene) Add(objects ...geometry.Object) {
	s.Objects = append(s.Objects, objects...)
}

// NearestIntersection finds the closest object hit by the ray, ignoring hits
// at distances within RayEpsilon of the origin. Returns (nil, +Inf) when
// nothing is hit. Linear scan over the objects; exact-distance ties go to the
// earlier object in iteration order.
func (s *Scene) NearestIntersection(ray core.Ray) (geometry.Object, float64) {
	var nearestObj geometry.Object
	nearestT := math.Inf(1)

	for _, obj := range s.Objects {
		hitT, ok := obj.Intersect(ray)
		if ok && hitT > geometry.RayEpsilon && hitT < nearestT {
			nearestObj = obj
			nearestT = hitT
		}
	}

	return nearestObj, nearestT
}
