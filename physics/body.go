// Package physics is the boundary between gameplay code and the physics
// engine. Gameplay reads and mutates bodies only through Body, asks ground
// questions through Raycaster, and learns about trigger overlaps through
// ContactEvent. World is the arcade backend shipped with the game.
package physics

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ForceMode selects how AddForce changes a body's velocity.
type ForceMode int

const (
	// ForceModeAcceleration contributes force*dt to velocity on the next
	// step, independent of mass.
	ForceModeAcceleration ForceMode = iota
	// ForceModeVelocityChange adds force to velocity immediately.
	ForceModeVelocityChange
)

func (m ForceMode) String() string {
	switch m {
	case ForceModeAcceleration:
		return "acceleration"
	case ForceModeVelocityChange:
		return "velocity_change"
	default:
		return "unknown"
	}
}

// Body is a rigid body owned by the physics engine.
type Body interface {
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	Rotation() mgl64.Quat
	SetRotation(q mgl64.Quat)
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	AngularVelocity() mgl64.Vec3
	SetAngularVelocity(v mgl64.Vec3)
	AddForce(f mgl64.Vec3, mode ForceMode)
	LinearDamping() float64
	SetLinearDamping(d float64)
}

// Raycaster answers ray intersection queries against collision layers.
type Raycaster interface {
	Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask Layer) bool
}

// Layer is a collision category bitmask.
type Layer uint

const LayerNone Layer = 0

const (
	LayerDefault Layer = 1 << iota
	LayerGround
	LayerWall
	LayerPlayer
	LayerTrigger
)

var layerNames = map[string]Layer{
	"default": LayerDefault,
	"ground":  LayerGround,
	"wall":    LayerWall,
	"player":  LayerPlayer,
	"trigger": LayerTrigger,
}

// ParseLayers turns a list of layer names into a mask. Unknown names are
// reported back so callers can log them; they contribute nothing to the mask.
func ParseLayers(names ...string) (Layer, []string) {
	var mask Layer
	var unknown []string
	for _, n := range names {
		l, ok := layerNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		mask |= l
	}
	return mask, unknown
}
