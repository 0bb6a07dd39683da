package component

import "github.com/go-gl/mathgl/mgl64"

// Input stores per-frame input state for an entity.
type Input struct {
	// Move is the planar move intent, length at most 1. X is right, Y is forward.
	Move        mgl64.Vec2
	Jump        bool
	JumpPressed bool
	// Rotate is -1, 0 or 1 for camera orbit.
	Rotate float64
	Pause  bool
}

var InputComponent = NewComponent[Input]()
