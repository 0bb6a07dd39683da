package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/rollerball/physics"
	"github.com/milk9111/rollerball/session"
)

// PlayerController is the rolling-ball movement state.
type PlayerController struct {
	GroundCheckDistance float64
	GroundLayer         physics.Layer
	GroundDrag          float64
	AirDrag             float64

	Grounded bool
	Move     mgl64.Vec2
	// Stats is the controller's copy of the session stats.
	Stats session.Stats
}

var PlayerControllerComponent = NewComponent[PlayerController]()
