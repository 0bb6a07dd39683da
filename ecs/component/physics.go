package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/rollerball/physics"
)

// RigidBody describes a dynamic sphere. Body is created by the physics system
// on first sight unless something else already attached one.
type RigidBody struct {
	Radius float64
	Mass   float64
	Layer  physics.Layer
	Body   physics.Body
}

var RigidBodyComponent = NewComponent[RigidBody]()

// Collider describes a static box or, for triggers with Radius > 0, a sphere.
// Its center comes from the entity's Transform.
type Collider struct {
	Kind        physics.StaticKind
	HalfExtents mgl64.Vec3
	Radius      float64
	Layer       physics.Layer
	Static      *physics.Static
}

var ColliderComponent = NewComponent[Collider]()
