package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/rollerball/common"
	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
	"github.com/milk9111/rollerball/physics"
	"github.com/milk9111/rollerball/session"
)

// Session is the part of session.Manager the controller relies on.
type Session interface {
	Subscribe(fn func(session.Stats))
	FallThreshold() float64
	RespawnPlayer() bool
}

// PlayerControllerSystem rolls the sphere. Update handles per-frame input,
// grounding, jumping and the fall check; FixedUpdate applies movement force
// before each physics substep.
type PlayerControllerSystem struct {
	session Session
	ray     physics.Raycaster
	stats   session.Stats
	logger  zerolog.Logger
}

func NewPlayerControllerSystem(s Session, ray physics.Raycaster) *PlayerControllerSystem {
	sys := &PlayerControllerSystem{
		session: s,
		ray:     ray,
		stats:   session.DefaultStats(),
		logger:  log.With().Str("system", "player_controller").Logger(),
	}
	if s != nil {
		s.Subscribe(func(st session.Stats) { sys.stats = st })
	}
	return sys
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerControllerComponent.Kind(), component.InputComponent.Kind(), component.RigidBodyComponent.Kind(), func(e ecs.Entity, pc *component.PlayerController, input *component.Input, rb *component.RigidBody) {
		pc.Stats = s.stats
		pc.Move = input.Move
		if rb.Body == nil {
			return
		}

		pos := rb.Body.Position()
		pc.Grounded = s.ray != nil && s.ray.Raycast(pos, common.Down, pc.GroundCheckDistance, pc.GroundLayer)

		if input.JumpPressed {
			input.JumpPressed = false
			if pc.Grounded {
				rb.Body.AddForce(common.Up.Mul(pc.Stats.JumpForce), physics.ForceModeVelocityChange)
				s.logger.Debug().Uint64("entity", uint64(e)).Float64("force", pc.Stats.JumpForce).Msg("jump")
			}
		}

		if s.session != nil && pos.Y() < s.session.FallThreshold() {
			s.logger.Info().Uint64("entity", uint64(e)).Float64("y", pos.Y()).Msg("fell out of level")
			s.session.RespawnPlayer()
		}
	})
}

func (s *PlayerControllerSystem) FixedUpdate(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	right, forward := CameraBasis(w)

	ecs.ForEach2(w, component.PlayerControllerComponent.Kind(), component.RigidBodyComponent.Kind(), func(e ecs.Entity, pc *component.PlayerController, rb *component.RigidBody) {
		if rb.Body == nil {
			return
		}
		pc.Stats = s.stats

		dir := right.Mul(pc.Move.X()).Add(forward.Mul(pc.Move.Y()))
		magnitude := pc.Stats.AirForce
		drag := pc.AirDrag
		if pc.Grounded {
			magnitude = pc.Stats.GroundForce
			drag = pc.GroundDrag
		}
		rb.Body.AddForce(dir.Mul(magnitude), physics.ForceModeAcceleration)
		rb.Body.SetLinearDamping(drag)

		v := rb.Body.Velocity()
		if speed := common.HorizontalMag(v); speed > pc.Stats.MaxSpeed && speed > 0 {
			scale := pc.Stats.MaxSpeed / speed
			rb.Body.SetVelocity(mgl64.Vec3{v.X() * scale, v.Y(), v.Z() * scale})
		}
	})
}

// rawRight and rawForward map input x and y straight onto world X and Z.
var (
	rawRight   = mgl64.Vec3{1, 0, 0}
	rawForward = mgl64.Vec3{0, 0, 1}
)

// CameraBasis returns the flattened right and forward axes of the first
// camera. Without a usable camera the raw input axes are world X and Z.
func CameraBasis(w *ecs.World) (right, forward mgl64.Vec3) {
	cam, ok := w.First(component.CameraComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return rawRight, rawForward
	}
	t, ok := ecs.Get(w, cam, component.TransformComponent.Kind())
	if !ok {
		return rawRight, rawForward
	}
	f, okF := common.Flatten(t.Forward())
	r, okR := common.Flatten(t.Right())
	if !okF || !okR {
		return rawRight, rawForward
	}
	return r, f
}
