package scene

import (
	"github.com/tmayes/go-orbit-tracer/pkg/core"
	"github.com/tmayes/go-orbit-tracer/pkg/geometry"
)

// NewDefaultScene creates the demo scene: a ground plane and a few diffuse
// spheres clustered around the origin, inside the camera orbit.
func NewDefaultScene() *Scene {
	ground := geometry.NewPlane(
		core.NewVec3(0, -1, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0.45, 0.45, 0.45),
	)

	sphereCenter := geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0, core.NewVec3(0.85, 0.25, 0.2))
	sphereLeft := geometry.NewSphere(core.NewVec3(-2.2, -0.4, 0.6), 0.6, core.NewVec3(0.2, 0.45, 0.85))
	sphereRight := geometry.NewSphere(core.NewVec3(2.0, -0.5, -0.8), 0.5, core.NewVec3(0.25, 0.8, 0.3))
	sphereSmall := geometry.NewSphere(core.NewVec3(0.9, -0.75, 1.4), 0.25, core.NewVec3(0.9, 0.8, 0.3))

	return NewScene(ground, sphereCenter, sphereLeft, sphereRight, sphereSmall)
}
