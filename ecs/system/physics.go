package system

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
	"github.com/milk9111/rollerball/physics"
)

const (
	DefaultFixedDT     = 0.02
	DefaultMaxSubsteps = 8
)

// FixedSystem runs once before every physics substep.
type FixedSystem interface {
	FixedUpdate(w *ecs.World, dt float64)
}

// PhysicsSystem steps the physics world on a fixed timestep and keeps ECS
// components and physics objects in sync.
type PhysicsSystem struct {
	world       *physics.World
	fixedDT     float64
	maxSubsteps int
	accumulator float64
	fixed       []FixedSystem

	bodies  map[ecs.Entity]*physics.RigidBody
	statics map[ecs.Entity]*physics.Static
	logger  zerolog.Logger
}

func NewPhysicsSystem(world *physics.World, fixedDT float64, maxSubsteps int) *PhysicsSystem {
	if fixedDT <= 0 {
		fixedDT = DefaultFixedDT
	}
	if maxSubsteps <= 0 {
		maxSubsteps = DefaultMaxSubsteps
	}
	return &PhysicsSystem{
		world:       world,
		fixedDT:     fixedDT,
		maxSubsteps: maxSubsteps,
		bodies:      make(map[ecs.Entity]*physics.RigidBody),
		statics:     make(map[ecs.Entity]*physics.Static),
		logger:      log.With().Str("system", "physics").Logger(),
	}
}

// AddFixed registers a system to run before each substep.
func (s *PhysicsSystem) AddFixed(f FixedSystem) {
	if f == nil {
		return
	}
	s.fixed = append(s.fixed, f)
}

func (s *PhysicsSystem) World() *physics.World { return s.world }
func (s *PhysicsSystem) FixedDT() float64      { return s.fixedDT }

func (s *PhysicsSystem) Update(w *ecs.World) {
	if s == nil || s.world == nil || w == nil {
		return
	}

	s.syncObjects(w)

	s.accumulator += w.DeltaTime()
	steps := 0
	for s.accumulator >= s.fixedDT && steps < s.maxSubsteps {
		for _, f := range s.fixed {
			f.FixedUpdate(w, s.fixedDT)
		}
		s.world.Step(s.fixedDT)
		s.accumulator -= s.fixedDT
		steps++
	}
	if s.accumulator >= s.fixedDT {
		s.logger.Debug().Float64("dropped", s.accumulator).Msg("physics fell behind")
		s.accumulator = 0
	}

	s.emitContacts(w)
	s.writeBack(w)
}

// syncObjects creates runtime objects for new components and removes those
// whose entity or component went away.
func (s *PhysicsSystem) syncObjects(w *ecs.World) {
	for e, rb := range s.bodies {
		comp, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind())
		if ok && comp.Body == physics.Body(rb) {
			continue
		}
		s.world.RemoveBody(rb)
		delete(s.bodies, e)
	}
	for e, st := range s.statics {
		comp, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
		if ok && comp.Static == st {
			continue
		}
		s.world.RemoveStatic(st)
		delete(s.statics, e)
	}

	ecs.ForEach2(w, component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rb *component.RigidBody, t *component.Transform) {
		if rb.Body != nil {
			return
		}
		body := s.world.AddSphere(physics.SphereDef{
			Position: t.Position,
			Rotation: t.Rotation,
			Radius:   rb.Radius,
			Mass:     rb.Mass,
			Layer:    rb.Layer,
			UserData: e,
		})
		if body == nil {
			return
		}
		rb.Body = body
		s.bodies[e] = body
	})

	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Collider, t *component.Transform) {
		if c.Static != nil {
			return
		}
		st := s.world.AddStatic(physics.StaticDef{
			Kind:        c.Kind,
			Center:      t.Position,
			HalfExtents: c.HalfExtents,
			Radius:      c.Radius,
			Layer:       c.Layer,
			UserData:    e,
		})
		if st == nil {
			return
		}
		c.Static = st
		s.statics[e] = st
	})
}

func (s *PhysicsSystem) emitContacts(w *ecs.World) {
	for _, c := range s.world.DrainContacts() {
		trigger, okT := c.Trigger.UserData.(ecs.Entity)
		other, okO := c.Body.UserData.(ecs.Entity)
		if !okT || !okO {
			continue
		}
		kind := ecs.TriggerEnter
		if c.Kind == physics.ContactExit {
			kind = ecs.TriggerExit
		}
		w.Events().Push(ecs.Event{
			Type: ecs.EventTrigger,
			Data: ecs.TriggerEvent{Trigger: trigger, Other: other, Kind: kind},
		})
	}
}

func (s *PhysicsSystem) writeBack(w *ecs.World) {
	ecs.ForEach2(w, component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rb *component.RigidBody, t *component.Transform) {
		if rb.Body == nil {
			return
		}
		t.Position = rb.Body.Position()
		t.Rotation = rb.Body.Rotation()
	})
}
