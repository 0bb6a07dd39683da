package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/rollerball/common"
	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
)

func TestOrbitOffset(t *testing.T) {
	tests := []struct {
		angle float64
		want  mgl64.Vec3
	}{
		{angle: 0, want: mgl64.Vec3{0, 5, 10}},
		{angle: 90, want: mgl64.Vec3{10, 5, 0}},
		{angle: 180, want: mgl64.Vec3{0, 5, -10}},
		{angle: 450, want: mgl64.Vec3{10, 5, 0}},
	}
	for _, tt := range tests {
		got := OrbitOffset(tt.angle, 10, 5)
		assertVecNear(t, tt.want, mgl64.Vec3{round9(got[0]), got[1], round9(got[2])})
	}
}

func round9(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}

func cameraFixture(t *testing.T) (*ecs.World, *CameraSystem, ecs.Entity, *fakeBody) {
	t.Helper()
	w := ecs.NewWorld()
	body := newFakeBody(mgl64.Vec3{0, 0.5, 0})
	addPlayer(t, w, body)
	cam := addCamera(t, w, mgl64.QuatIdent())
	return w, NewCameraSystem(), cam, body
}

func cameraState(t *testing.T, w *ecs.World, cam ecs.Entity) (*component.Camera, *component.Transform) {
	t.Helper()
	c, ok := ecs.Get(w, cam, component.CameraComponent.Kind())
	require.True(t, ok)
	tr, ok := ecs.Get(w, cam, component.TransformComponent.Kind())
	require.True(t, ok)
	return c, tr
}

func TestCameraSkipsResolveFrame(t *testing.T) {
	w, sys, cam, body := cameraFixture(t)
	body.pos = mgl64.Vec3{20, 0.5, 0}
	w.SetDeltaTime(0.05)
	_, tr := cameraState(t, w, cam)
	start := tr.Position

	sys.Update(w)
	assert.Equal(t, start, tr.Position)
	_, ok := sys.Target(cam)
	assert.True(t, ok)

	sys.Update(w)
	assert.NotEqual(t, start, tr.Position)
}

func TestCameraFollow(t *testing.T) {
	w, sys, cam, body := cameraFixture(t)
	w.SetDeltaTime(0.05)
	sys.Update(w)

	body.pos = mgl64.Vec3{4, 0.5, 0}
	_, tr := cameraState(t, w, cam)
	start := tr.Position
	desired := body.pos.Add(OrbitOffset(0, 10, 5))

	sys.Update(w)

	// t = clamp01(10 * 0.05) = 0.5
	assertVecNear(t, common.LerpVec3(start, desired, 0.5), tr.Position)
}

func TestCameraLerpClampsLargeDelta(t *testing.T) {
	w, sys, cam, body := cameraFixture(t)
	w.SetDeltaTime(1)
	sys.Update(w)
	body.pos = mgl64.Vec3{-3, 2, 7}

	sys.Update(w)

	_, tr := cameraState(t, w, cam)
	assertVecNear(t, body.pos.Add(OrbitOffset(0, 10, 5)), tr.Position)
	look := common.LookRotation(body.pos.Sub(tr.Position), common.Up)
	assert.True(t, common.QuatApproxEqual(look, tr.Rotation, 1e-9))
}

func TestCameraRotateInput(t *testing.T) {
	w, sys, cam, _ := cameraFixture(t)
	w.SetDeltaTime(0.1)
	sys.Update(w)

	input, ok := ecs.Get(w, cam, component.InputComponent.Kind())
	require.True(t, ok)
	input.Rotate = 1
	sys.Update(w)
	sys.Update(w)
	input.Rotate = -1
	sys.Update(w)

	c, _ := cameraState(t, w, cam)
	assert.InDelta(t, 10, c.Angle, 1e-9)
}

func TestCameraAngleUnbounded(t *testing.T) {
	w, sys, cam, _ := cameraFixture(t)
	w.SetDeltaTime(1)
	sys.Update(w)

	input, _ := ecs.Get(w, cam, component.InputComponent.Kind())
	input.Rotate = 1
	for i := 0; i < 5; i++ {
		sys.Update(w)
	}

	c, _ := cameraState(t, w, cam)
	assert.InDelta(t, 500, c.Angle, 1e-9)
}

func TestCameraLookAtDisabled(t *testing.T) {
	w, sys, cam, body := cameraFixture(t)
	c, tr := cameraState(t, w, cam)
	c.LookAt = false
	w.SetDeltaTime(0.05)
	sys.Update(w)
	body.pos = mgl64.Vec3{8, 0.5, -3}

	sys.Update(w)

	assert.Equal(t, mgl64.QuatIdent(), tr.Rotation)
}

func TestCameraReresolvesDeadTarget(t *testing.T) {
	w, sys, cam, _ := cameraFixture(t)
	w.SetDeltaTime(0.05)
	sys.Update(w)
	old, ok := sys.Target(cam)
	require.True(t, ok)

	ecs.DestroyEntity(w, old)
	replacement := addPlayer(t, w, newFakeBody(mgl64.Vec3{30, 0.5, 30}))
	_, tr := cameraState(t, w, cam)
	before := tr.Position

	sys.Update(w)
	assert.Equal(t, before, tr.Position, "resolve frame does not move")
	got, ok := sys.Target(cam)
	require.True(t, ok)
	assert.Equal(t, replacement, got)

	sys.Update(w)
	assert.NotEqual(t, before, tr.Position)
}

func TestCameraWithoutTarget(t *testing.T) {
	w := ecs.NewWorld()
	cam := addCamera(t, w, mgl64.QuatIdent())
	sys := NewCameraSystem()
	w.SetDeltaTime(0.05)
	_, tr := cameraState(t, w, cam)
	before := *tr

	for i := 0; i < 3; i++ {
		sys.Update(w)
	}

	assert.Equal(t, before, *tr)
}
