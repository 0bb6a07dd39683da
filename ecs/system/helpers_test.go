package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
	"github.com/milk9111/rollerball/physics"
	"github.com/milk9111/rollerball/session"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

type forceCall struct {
	force mgl64.Vec3
	mode  physics.ForceMode
}

type fakeBody struct {
	pos     mgl64.Vec3
	rot     mgl64.Quat
	vel     mgl64.Vec3
	angVel  mgl64.Vec3
	damping float64
	forces  []forceCall
}

func newFakeBody(pos mgl64.Vec3) *fakeBody {
	return &fakeBody{pos: pos, rot: mgl64.QuatIdent()}
}

func (b *fakeBody) Position() mgl64.Vec3            { return b.pos }
func (b *fakeBody) SetPosition(p mgl64.Vec3)        { b.pos = p }
func (b *fakeBody) Rotation() mgl64.Quat            { return b.rot }
func (b *fakeBody) SetRotation(q mgl64.Quat)        { b.rot = q }
func (b *fakeBody) Velocity() mgl64.Vec3            { return b.vel }
func (b *fakeBody) SetVelocity(v mgl64.Vec3)        { b.vel = v }
func (b *fakeBody) AngularVelocity() mgl64.Vec3     { return b.angVel }
func (b *fakeBody) SetAngularVelocity(v mgl64.Vec3) { b.angVel = v }
func (b *fakeBody) LinearDamping() float64          { return b.damping }
func (b *fakeBody) SetLinearDamping(d float64)      { b.damping = d }

func (b *fakeBody) AddForce(f mgl64.Vec3, mode physics.ForceMode) {
	b.forces = append(b.forces, forceCall{force: f, mode: mode})
	if mode == physics.ForceModeVelocityChange {
		b.vel = b.vel.Add(f)
	}
}

func (b *fakeBody) forcesOf(mode physics.ForceMode) []mgl64.Vec3 {
	var out []mgl64.Vec3
	for _, c := range b.forces {
		if c.mode == mode {
			out = append(out, c.force)
		}
	}
	return out
}

type fakeRay struct {
	hit   bool
	calls int
}

func (r *fakeRay) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask physics.Layer) bool {
	r.calls++
	return r.hit && mask != physics.LayerNone
}

type fakeSession struct {
	stats       session.Stats
	subs        []func(session.Stats)
	threshold   float64
	respawns    int
	checkpoints []mgl64.Vec3
	increases   []session.StatKind
}

func newFakeSession() *fakeSession {
	return &fakeSession{stats: session.DefaultStats(), threshold: session.DefaultFallThreshold}
}

func (s *fakeSession) Subscribe(fn func(session.Stats)) {
	s.subs = append(s.subs, fn)
	fn(s.stats)
}

func (s *fakeSession) push(st session.Stats) {
	s.stats = st
	for _, fn := range s.subs {
		fn(st)
	}
}

func (s *fakeSession) FallThreshold() float64 { return s.threshold }
func (s *fakeSession) RespawnPlayer() bool    { s.respawns++; return true }
func (s *fakeSession) Stats() session.Stats   { return s.stats }

func (s *fakeSession) SetCheckpoint(pos mgl64.Vec3, rot mgl64.Quat) {
	s.checkpoints = append(s.checkpoints, pos)
}

func (s *fakeSession) IncreaseStat(kind session.StatKind, amount float64) {
	s.increases = append(s.increases, kind)
}

type fakeEffects struct {
	celebrations int
	pickups      []session.StatKind
	checkpoints  int
}

func (f *fakeEffects) SpawnCelebration(mgl64.Vec3)                     { f.celebrations++ }
func (f *fakeEffects) SpawnPickup(_ mgl64.Vec3, kind session.StatKind) { f.pickups = append(f.pickups, kind) }
func (f *fakeEffects) SpawnCheckpoint(mgl64.Vec3)                      { f.checkpoints++ }

func addPlayer(t *testing.T, w *ecs.World, body physics.Body) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(body.Position())))
	require.NoError(t, ecs.Add(w, e, component.TagComponent.Kind(), &component.Tag{Name: component.TagPlayer}))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{Radius: 0.5, Body: body}))
	require.NoError(t, ecs.Add(w, e, component.PlayerControllerComponent.Kind(), &component.PlayerController{
		GroundCheckDistance: 0.6,
		GroundLayer:         physics.LayerGround,
		GroundDrag:          6,
		AirDrag:             1,
	}))
	return e
}

func addCamera(t *testing.T, w *ecs.World, rot mgl64.Quat) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	tr := component.NewTransform(mgl64.Vec3{0, 5, 10})
	tr.Rotation = rot
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), tr))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Target:              component.TagPlayer,
		Distance:            10,
		Height:              5,
		SmoothSpeed:         10,
		LookAt:              true,
		RotationSpeed:       100,
		RotationSmoothSpeed: 5,
	}))
	return e
}

func addTrigger(t *testing.T, w *ecs.World, pos mgl64.Vec3) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(pos)))
	return e
}

func pushEnter(w *ecs.World, trigger, other ecs.Entity) {
	w.Events().Push(ecs.Event{
		Type: ecs.EventTrigger,
		Data: ecs.TriggerEvent{Trigger: trigger, Other: other, Kind: ecs.TriggerEnter},
	})
}
