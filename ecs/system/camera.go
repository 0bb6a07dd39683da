package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/rollerball/common"
	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
)

// CameraSystem orbits each camera around its tagged target. A camera spends
// the frame in which it finds its target doing nothing else.
type CameraSystem struct {
	targets map[ecs.Entity]ecs.Entity
	missing map[ecs.Entity]bool
	logger  zerolog.Logger
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{
		targets: make(map[ecs.Entity]ecs.Entity),
		missing: make(map[ecs.Entity]bool),
		logger:  log.With().Str("system", "camera").Logger(),
	}
}

func (s *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, cam *component.Camera, t *component.Transform) {
		target, ok := s.targets[e]
		if !ok || !ecs.IsAlive(w, target) {
			s.resolve(w, e, cam)
			return
		}

		if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			cam.Angle += input.Rotate * cam.RotationSpeed * dt
		}

		targetPos, ok := positionOf(w, target)
		if !ok {
			return
		}
		desired := targetPos.Add(OrbitOffset(cam.Angle, cam.Distance, cam.Height))
		t.Position = common.LerpVec3(t.Position, desired, cam.SmoothSpeed*dt)

		if cam.LookAt {
			look := targetPos.Sub(t.Position)
			if look.Len() > common.Epsilon {
				t.Rotation = common.Slerp(t.Rotation, common.LookRotation(look, common.Up), cam.RotationSmoothSpeed*dt)
			}
		}
	})

	for cam := range s.targets {
		if !ecs.IsAlive(w, cam) {
			delete(s.targets, cam)
			delete(s.missing, cam)
		}
	}
}

func (s *CameraSystem) resolve(w *ecs.World, cam ecs.Entity, c *component.Camera) {
	delete(s.targets, cam)
	target, ok := findTagged(w, c.Target)
	if !ok {
		if !s.missing[cam] {
			s.logger.Warn().Str("tag", c.Target).Msg("no camera target")
			s.missing[cam] = true
		}
		return
	}
	s.targets[cam] = target
	delete(s.missing, cam)
	s.logger.Info().Str("tag", c.Target).Uint64("target", uint64(target)).Msg("camera target found")
}

// Target returns the entity a camera currently follows.
func (s *CameraSystem) Target(cam ecs.Entity) (ecs.Entity, bool) {
	target, ok := s.targets[cam]
	return target, ok
}

// OrbitOffset is the camera position relative to its target for an orbit
// angle in degrees.
func OrbitOffset(angle, distance, height float64) mgl64.Vec3 {
	rad := mgl64.DegToRad(angle)
	return mgl64.Vec3{math.Sin(rad) * distance, height, math.Cos(rad) * distance}
}
