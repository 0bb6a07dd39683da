package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
	"github.com/milk9111/rollerball/levels"
	"github.com/milk9111/rollerball/physics"
	"github.com/milk9111/rollerball/session"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

var _ session.Registry = (*Registry)(nil)

func TestNewPlayerFromPrefab(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayerAt(w, mgl64.Vec3{1, 2, 3}, mgl64.QuatIdent())
	require.NoError(t, err)

	tag, ok := ecs.Get(w, e, component.TagComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.TagPlayer, tag.Name)

	pc, ok := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, physics.LayerGround, pc.GroundLayer)
	assert.Equal(t, 0.6, pc.GroundCheckDistance)
	assert.Equal(t, 6.0, pc.GroundDrag)
	assert.Equal(t, 1.0, pc.AirDrag)

	rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind())
	require.True(t, ok)
	assert.Nil(t, rb.Body)
	assert.Equal(t, 0.5, rb.Radius)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, tr.Position)
	assert.True(t, ecs.Has(w, e, component.InputComponent.Kind()))
}

func TestNewCameraAtLooksAtTarget(t *testing.T) {
	w := ecs.NewWorld()
	target := mgl64.Vec3{0, 0.5, 0}
	e, err := NewCameraAt(w, target)
	require.NoError(t, err)

	cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.TagPlayer, cam.Target)
	assert.Equal(t, 60.0, cam.FOV)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, mgl64.Vec3{0, 5.5, 10}, tr.Position)
	fwd := tr.Forward()
	want := target.Sub(tr.Position).Normalize()
	assert.InDelta(t, want.Y(), fwd.Y(), 1e-9)
	assert.InDelta(t, want.Z(), fwd.Z(), 1e-9)
}

func TestPowerupBuilders(t *testing.T) {
	tests := []struct {
		prefab string
		stat   session.StatKind
		amount float64
	}{
		{prefab: "speed_boost.yaml", stat: session.StatSpeed, amount: 5},
		{prefab: "jump_boost.yaml", stat: session.StatJump, amount: 2},
	}
	for _, tt := range tests {
		t.Run(tt.prefab, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := NewPowerup(w, tt.prefab, mgl64.Vec3{})
			require.NoError(t, err)
			p, ok := ecs.Get(w, e, component.PowerupComponent.Kind())
			require.True(t, ok)
			assert.Equal(t, tt.stat, p.Stat)
			assert.Equal(t, tt.amount, p.Amount)
			col, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
			assert.Equal(t, physics.StaticTrigger, col.Kind)
			assert.Equal(t, 0.5, col.Radius)
		})
	}

	_, err := NewPowerup(ecs.NewWorld(), "missing.yaml", mgl64.Vec3{})
	assert.Error(t, err)
}

func TestLoadLevelToWorld(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("level1")
	require.NoError(t, err)
	w := ecs.NewWorld()

	loaded, err := LoadLevelToWorld(w, lvl)
	require.NoError(t, err)
	assert.True(t, loaded.HasSpawn)

	colliders := w.Query(component.ColliderComponent.Kind())
	assert.Len(t, colliders, len(lvl.Blocks)+len(lvl.Entities)-1)
	assert.Len(t, w.Query(component.PowerupComponent.Kind()), len(lvl.EntitiesOf(levels.EntityPowerup)))
	assert.Len(t, w.Query(component.CheckpointComponent.Kind()), 1)
	assert.Len(t, w.Query(component.LevelFinishComponent.Kind()), 1)

	tr, _ := ecs.Get(w, loaded.Player, component.TransformComponent.Kind())
	assert.Equal(t, lvl.EntitiesOf(levels.EntitySpawn)[0].PositionVec(), tr.Position)
}

func TestLoadLevelWithoutSpawn(t *testing.T) {
	lvl, err := levels.Parse([]byte(`{"name":"bare","blocks":[{"type":"platform","center":[0,-0.5,0],"half_extents":[2,0.5,2]}]}`))
	require.NoError(t, err)
	w := ecs.NewWorld()

	loaded, err := LoadLevelToWorld(w, lvl)
	require.NoError(t, err)
	assert.False(t, loaded.HasSpawn)

	_, _, ok := NewRegistry(w).SpawnMarker()
	assert.False(t, ok)
}

func TestRegistryCachesUntilDeath(t *testing.T) {
	w := ecs.NewWorld()
	first, err := NewPlayer(w)
	require.NoError(t, err)
	reg := NewRegistry(w)

	_, ok := reg.Player()
	assert.False(t, ok, "no body attached yet")

	got, ok := reg.PlayerEntity()
	require.True(t, ok)
	assert.Equal(t, first, got)

	// A second tagged entity does not steal the cached binding.
	second, err := NewPlayer(w)
	require.NoError(t, err)
	got, _ = reg.PlayerEntity()
	assert.Equal(t, first, got)

	ecs.DestroyEntity(w, first)
	got, ok = reg.PlayerEntity()
	require.True(t, ok)
	assert.Equal(t, second, got)

	pw := physics.NewWorld(physics.Config{})
	rb, _ := ecs.Get(w, second, component.RigidBodyComponent.Kind())
	rb.Body = pw.AddSphere(physics.SphereDef{Position: mgl64.Vec3{4, 1, 0}})
	body, ok := reg.Player()
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{4, 1, 0}, body.Position())
}

func TestRegistrySpawnMarker(t *testing.T) {
	w := ecs.NewWorld()
	rot := mgl64.QuatRotate(1, mgl64.Vec3{0, 1, 0})
	_, err := NewSpawnMarker(w, mgl64.Vec3{3, 1, -2}, rot)
	require.NoError(t, err)

	pos, gotRot, ok := NewRegistry(w).SpawnMarker()
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{3, 1, -2}, pos)
	assert.Equal(t, rot, gotRot)
}

func TestRegistryWithSession(t *testing.T) {
	w := ecs.NewWorld()
	_, err := NewSpawnMarker(w, mgl64.Vec3{0, 2, 0}, mgl64.QuatIdent())
	require.NoError(t, err)
	player, err := NewPlayerAt(w, mgl64.Vec3{9, -20, 9}, mgl64.QuatIdent())
	require.NoError(t, err)
	pw := physics.NewWorld(physics.Config{})
	rb, _ := ecs.Get(w, player, component.RigidBodyComponent.Kind())
	body := pw.AddSphere(physics.SphereDef{Position: mgl64.Vec3{9, -20, 9}})
	rb.Body = body
	body.SetVelocity(mgl64.Vec3{1, -5, 1})

	mgr := session.New(session.DefaultConfig(), NewRegistry(w))
	mgr.SetLogger(zerolog.Nop())
	require.NoError(t, mgr.Start())
	require.True(t, mgr.RespawnPlayer())

	assert.Equal(t, mgl64.Vec3{0, 2, 0}, body.Position())
	assert.Equal(t, mgl64.Vec3{}, body.Velocity())
}

func TestLevelPowerupAmountOverride(t *testing.T) {
	lvl, err := levels.Parse([]byte(`{"entities":[{"type":"powerup","props":{"prefab":"jump_boost.yaml","amount":4}}]}`))
	require.NoError(t, err)
	w := ecs.NewWorld()
	_, err = LoadLevelToWorld(w, lvl)
	require.NoError(t, err)

	e, ok := ecs.First(w, component.PowerupComponent.Kind())
	require.True(t, ok)
	p, _ := ecs.Get(w, e, component.PowerupComponent.Kind())
	assert.Equal(t, 4.0, p.Amount)
	assert.Equal(t, session.StatJump, p.Stat)
}
