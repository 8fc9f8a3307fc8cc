package integrator

import (
	"math"
	"testing"

	"github.com/tmayes/go-orbit-tracer/pkg/core"
)

func TestOrbitCamera_StaticPosition(t *testing.T) {
	camera := NewOrbitCamera(320, 180, 0)

	// With no frame count the orbit time is zero
	ray := camera.Ray(0, 160, 90, 0.5, 0.5, 0.5)

	expectedPos := core.NewVec3(4, 5, -10).Multiply(0.25)
	if ray.Origin.Subtract(expectedPos).Length() > 1e-9 {
		t.Errorf("Expected origin %v, got %v", expectedPos, ray.Origin)
	}
}

func TestOrbitCamera_DirectionIsUnit(t *testing.T) {
	camera := NewOrbitCamera(320, 180, 24)

	for _, px := range []struct{ x, y int }{{0, 0}, {160, 90}, {319, 179}} {
		ray := camera.Ray(3, px.x, px.y, 0.25, 0.75, 0.1)
		if math.Abs(ray.Direction.Length()-1.0) > 1e-9 {
			t.Errorf("Pixel (%d,%d): direction length %v, expected 1", px.x, px.y, ray.Direction.Length())
		}
	}
}

func TestOrbitCamera_CenterPixelLooksAtOrigin(t *testing.T) {
	camera := NewOrbitCamera(320, 180, 0)
	ray := camera.Ray(0, 160, 90, 0.0, 0.0, 0.0)

	toOrigin := core.NewVec3(0, 0, 0).Subtract(ray.Origin).Normalize()
	if ray.Direction.Dot(toOrigin) < 0.99 {
		t.Errorf("Center pixel direction %v not toward origin (%v)", ray.Direction, toOrigin)
	}
}

func TestOrbitCamera_OrbitsAcrossFrames(t *testing.T) {
	camera := NewOrbitCamera(320, 180, 24)

	r0 := camera.Ray(0, 160, 90, 0, 0, 0)
	r12 := camera.Ray(12, 160, 90, 0, 0, 0)

	if r0.Origin.Subtract(r12.Origin).Length() < 0.5 {
		t.Errorf("Expected camera to move across frames: %v vs %v", r0.Origin, r12.Origin)
	}

	// Height stays constant on the orbit
	if math.Abs(r0.Origin.Y-r12.Origin.Y) > 1e-9 {
		t.Errorf("Expected constant orbit height, got %v vs %v", r0.Origin.Y, r12.Origin.Y)
	}
}

func TestOrbitCamera_SubPixelJitterMovesDirection(t *testing.T) {
	camera := NewOrbitCamera(320, 180, 0)

	a := camera.Ray(0, 50, 60, 0.0, 0.0, 0.0)
	b := camera.Ray(0, 50, 60, 0.999, 0.999, 0.0)

	if a.Direction.Subtract(b.Direction).Length() == 0 {
		t.Error("Expected jitter to change the ray direction")
	}

	// Jitter stays within the pixel: neighbouring pixel with zero jitter
	// matches this pixel with unit jitter in x.
	c := camera.Ray(0, 51, 60, 0.0, 0.0, 0.0)
	d := camera.Ray(0, 50, 60, 1.0, 0.0, 0.0)
	if c.Direction.Subtract(d.Direction).Length() > 1e-12 {
		t.Errorf("Pixel+jitter mapping inconsistent: %v vs %v", c.Direction, d.Direction)
	}
}
