package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// SphereDef describes a dynamic sphere.
type SphereDef struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Radius   float64
	Mass     float64
	Layer    Layer
	UserData any
}

// RigidBody is a dynamic sphere. Horizontal motion lives in the cp body;
// vertical position and velocity are integrated by World.
type RigidBody struct {
	world  *World
	body   *cp.Body
	shape  *cp.Shape
	radius float64
	layer  Layer

	y          float64
	vy         float64
	prevBottom float64
	rot        mgl64.Quat
	angVel     mgl64.Vec3
	accel      mgl64.Vec3
	damping    float64
	resting    bool

	UserData any
}

// AddSphere creates a dynamic sphere and adds it to the space.
func (w *World) AddSphere(def SphereDef) *RigidBody {
	if w == nil || w.space == nil {
		return nil
	}
	radius := def.Radius
	if radius <= 0 {
		radius = 0.5
	}
	mass := def.Mass
	if mass <= 0 {
		mass = 1
	}
	layer := def.Layer
	if layer == LayerNone {
		layer = LayerPlayer
	}
	rot := def.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}

	// Spin is tracked in 3D by RigidBody, so the planar body never rotates.
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: def.Position[0], Y: def.Position[2]})
	body.SetAngle(0)
	body.SetAngularVelocity(0)

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeBody)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))

	rb := &RigidBody{
		world:    w,
		body:     body,
		shape:    shape,
		radius:   radius,
		layer:    layer,
		y:        def.Position[1],
		rot:      rot.Normalize(),
		UserData: def.UserData,
	}
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(b, cp.Vector{X: rb.accel[0], Y: rb.accel[2]}, rb.decay(dt), dt)
	})

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.bodies = append(w.bodies, rb)
	w.bodyShape[shape] = rb
	return rb
}

// RemoveBody takes a sphere out of the simulation.
func (w *World) RemoveBody(rb *RigidBody) {
	if w == nil || rb == nil || rb.world != w {
		return
	}
	for i, other := range w.bodies {
		if other == rb {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	if rb.shape != nil {
		w.space.RemoveShape(rb.shape)
		delete(w.bodyShape, rb.shape)
	}
	if rb.body != nil {
		w.space.RemoveBody(rb.body)
	}
	w.forgetPairs(func(p contactPair) bool { return p.body == rb })
	rb.world = nil
}

func (rb *RigidBody) decay(dt float64) float64 {
	return math.Max(0, 1-rb.damping*dt)
}

func (rb *RigidBody) integrateRotation(dt float64) {
	if rb.resting {
		v := rb.Velocity()
		rb.angVel = mgl64.Vec3{v[2], 0, -v[0]}.Mul(1 / rb.radius)
	}
	speed := rb.angVel.Len()
	if speed < 1e-9 {
		return
	}
	step := mgl64.QuatRotate(speed*dt, rb.angVel.Mul(1/speed))
	rb.rot = step.Mul(rb.rot).Normalize()
}

func (rb *RigidBody) Position() mgl64.Vec3 {
	p := rb.body.Position()
	return mgl64.Vec3{p.X, rb.y, p.Y}
}

func (rb *RigidBody) SetPosition(p mgl64.Vec3) {
	rb.body.SetPosition(cp.Vector{X: p[0], Y: p[2]})
	rb.y = p[1]
	rb.prevBottom = rb.y - rb.radius
	rb.resting = false
	if rb.world != nil {
		// A teleported body must not report or keep the overlaps of its old spot.
		rb.world.forgetPairs(func(pair contactPair) bool { return pair.body == rb })
	}
}

func (rb *RigidBody) Rotation() mgl64.Quat {
	return rb.rot
}

func (rb *RigidBody) SetRotation(q mgl64.Quat) {
	if q.Len() == 0 {
		q = mgl64.QuatIdent()
	}
	rb.rot = q.Normalize()
}

func (rb *RigidBody) Velocity() mgl64.Vec3 {
	v := rb.body.Velocity()
	return mgl64.Vec3{v.X, rb.vy, v.Y}
}

func (rb *RigidBody) SetVelocity(v mgl64.Vec3) {
	rb.body.SetVelocityVector(cp.Vector{X: v[0], Y: v[2]})
	rb.vy = v[1]
}

func (rb *RigidBody) AngularVelocity() mgl64.Vec3 {
	return rb.angVel
}

func (rb *RigidBody) SetAngularVelocity(v mgl64.Vec3) {
	rb.angVel = v
}

func (rb *RigidBody) AddForce(f mgl64.Vec3, mode ForceMode) {
	switch mode {
	case ForceModeVelocityChange:
		rb.SetVelocity(rb.Velocity().Add(f))
	default:
		rb.accel = rb.accel.Add(f)
	}
}

func (rb *RigidBody) LinearDamping() float64 {
	return rb.damping
}

func (rb *RigidBody) SetLinearDamping(d float64) {
	rb.damping = d
}

// Radius returns the sphere radius.
func (rb *RigidBody) Radius() float64 {
	return rb.radius
}

// Resting reports whether the body ended the last step on a platform.
func (rb *RigidBody) Resting() bool {
	return rb.resting
}
