package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeWall
	collisionTypeTrigger
)

const (
	DefaultGravity     = -9.81
	defaultLandingSlop = 0.05
	spaceIterations    = 10
)

// Config tunes the arcade backend.
type Config struct {
	// Gravity is the vertical acceleration (negative is down).
	Gravity float64
	// LandingSlop is how far below a platform top a body may start a step
	// and still land on it.
	LandingSlop float64
}

// World runs Chipmunk in the horizontal plane (cp X = world X, cp Y = world
// Z) and integrates the vertical axis itself against platform tops. Walls
// are full-height solids in cp; triggers are cp sensors with a vertical
// extent checked after each step.
type World struct {
	cfg           Config
	space         *cp.Space
	handlersReady bool

	bodies    []*RigidBody
	statics   []*Static
	bodyShape map[*cp.Shape]*RigidBody
	trigShape map[*cp.Shape]*Static

	touching []contactPair
	overlaps map[contactPair]struct{}
	contacts []ContactEvent
}

type contactPair struct {
	body    *RigidBody
	trigger *Static
}

// ContactKind identifies an overlap transition.
type ContactKind int

const (
	ContactEnter ContactKind = iota
	ContactExit
)

// ContactEvent reports a body entering or leaving a trigger volume.
type ContactEvent struct {
	Kind    ContactKind
	Trigger *Static
	Body    *RigidBody
}

// NewWorld creates an empty physics world.
func NewWorld(cfg Config) *World {
	if cfg.LandingSlop <= 0 {
		cfg.LandingSlop = defaultLandingSlop
	}
	space := cp.NewSpace()
	space.Iterations = spaceIterations
	space.SetGravity(cp.Vector{})

	w := &World{
		cfg:       cfg,
		space:     space,
		bodyShape: make(map[*cp.Shape]*RigidBody),
		trigShape: make(map[*cp.Shape]*Static),
		overlaps:  make(map[contactPair]struct{}),
	}
	w.ensureHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Gravity returns the configured vertical acceleration.
func (w *World) Gravity() float64 {
	return w.cfg.Gravity
}

func (w *World) ensureHandlers() {
	if w.handlersReady || w.space == nil {
		return
	}

	triggerHandler := w.space.NewCollisionHandler(collisionTypeBody, collisionTypeTrigger)
	triggerHandler.UserData = w
	triggerHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		pw, ok := userData.(*World)
		if !ok || pw == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		body, okA := pw.bodyShape[shapeA]
		trigger, okB := pw.trigShape[shapeB]
		if !okA || !okB {
			body, okA = pw.bodyShape[shapeB]
			trigger, okB = pw.trigShape[shapeA]
			if !okA || !okB {
				return true
			}
		}
		pw.touching = append(pw.touching, contactPair{body: body, trigger: trigger})
		return true
	}

	w.handlersReady = true
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}

	for _, rb := range w.bodies {
		rb.prevBottom = rb.y - rb.radius
		rb.vy = rb.vy*rb.decay(dt) + (w.cfg.Gravity+rb.accel[1])*dt
	}

	w.touching = w.touching[:0]
	w.space.Step(dt)

	for _, rb := range w.bodies {
		rb.y += rb.vy * dt
		rb.resting = false
		if top, ok := w.landingSurface(rb); ok {
			rb.y = top + rb.radius
			if rb.vy < 0 {
				rb.vy = 0
			}
			rb.resting = true
		}
		rb.integrateRotation(dt)
		rb.accel = mgl64.Vec3{}
	}

	w.updateContacts()
}

// landingSurface finds the highest platform top the body crossed this step.
func (w *World) landingSurface(rb *RigidBody) (float64, bool) {
	pos := rb.Position()
	bottom := rb.y - rb.radius
	best := math.Inf(-1)
	found := false
	for _, st := range w.statics {
		if st.kind != StaticPlatform {
			continue
		}
		top := st.Top()
		if rb.prevBottom < top-w.cfg.LandingSlop || bottom > top {
			continue
		}
		if !st.containsXZ(pos[0], pos[2]) {
			continue
		}
		if top > best {
			best = top
			found = true
		}
	}
	return best, found
}

func (w *World) updateContacts() {
	current := make(map[contactPair]struct{}, len(w.touching))
	for _, pair := range w.touching {
		if _, dup := current[pair]; dup {
			continue
		}
		if !pair.trigger.overlapsY(pair.body.y-pair.body.radius, pair.body.y+pair.body.radius) {
			continue
		}
		current[pair] = struct{}{}
		if _, was := w.overlaps[pair]; !was {
			w.contacts = append(w.contacts, ContactEvent{Kind: ContactEnter, Trigger: pair.trigger, Body: pair.body})
		}
	}
	for pair := range w.overlaps {
		if _, still := current[pair]; !still {
			w.contacts = append(w.contacts, ContactEvent{Kind: ContactExit, Trigger: pair.trigger, Body: pair.body})
		}
	}
	w.overlaps = current
}

// DrainContacts returns the contact events produced since the last call.
func (w *World) DrainContacts() []ContactEvent {
	if w == nil || len(w.contacts) == 0 {
		return nil
	}
	out := w.contacts
	w.contacts = nil
	return out
}

// Bodies returns the dynamic bodies in creation order.
func (w *World) Bodies() []*RigidBody {
	if w == nil {
		return nil
	}
	return append([]*RigidBody(nil), w.bodies...)
}

// Statics returns the static colliders in creation order.
func (w *World) Statics() []*Static {
	if w == nil {
		return nil
	}
	return append([]*Static(nil), w.statics...)
}

func (w *World) forgetPairs(match func(contactPair) bool) {
	for pair := range w.overlaps {
		if match(pair) {
			delete(w.overlaps, pair)
		}
	}
	kept := w.touching[:0]
	for _, pair := range w.touching {
		if !match(pair) {
			kept = append(kept, pair)
		}
	}
	w.touching = kept
}
