package render

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
)

func TestProjectCenter(t *testing.T) {
	v := NewView(mgl64.Vec3{0, 0, 10}, mgl64.QuatIdent(), 90, 640, 360)

	x, y, depth, ok := v.Project(mgl64.Vec3{0, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 320, x, 1e-9)
	assert.InDelta(t, 180, y, 1e-9)
	assert.InDelta(t, 10, depth, 1e-9)

	// fov 90 => focal = height/2
	x, y, _, ok = v.Project(mgl64.Vec3{5, 5, 0})
	require.True(t, ok)
	assert.InDelta(t, 320+90, x, 1e-9)
	assert.InDelta(t, 180-90, y, 1e-9)

	_, _, _, ok = v.Project(mgl64.Vec3{0, 0, 20})
	assert.False(t, ok, "behind the camera")
}

func TestProjectRotatedCamera(t *testing.T) {
	// yaw 90 degrees left: the camera now looks down -X
	rot := mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 1, 0})
	v := NewView(mgl64.Vec3{}, rot, 60, 200, 100)

	x, _, depth, ok := v.Project(mgl64.Vec3{-4, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 4, depth, 1e-9)
}

func TestProjectSegmentClipsNearPlane(t *testing.T) {
	v := NewView(mgl64.Vec3{}, mgl64.QuatIdent(), 90, 100, 100)

	_, _, _, _, ok := v.ProjectSegment(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 2})
	assert.False(t, ok)

	x0, y0, x1, y1, ok := v.ProjectSegment(mgl64.Vec3{1, 0, 5}, mgl64.Vec3{1, 0, -5})
	require.True(t, ok)
	assert.InDelta(t, 50, y0, 1e-9)
	assert.InDelta(t, 50, y1, 1e-9)
	// the clipped end sits on the near plane, far to the right
	assert.Greater(t, x0, x1)
	assert.InDelta(t, 50+50*1/0.1, x0, 1e-6)
	assert.InDelta(t, 60, x1, 1e-9)
}

func TestBoxCorners(t *testing.T) {
	corners := BoxCorners(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 1, 1})
	assert.Equal(t, mgl64.Vec3{0, 1, 2}, corners[0])
	assert.Equal(t, mgl64.Vec3{2, 3, 4}, corners[7])
	for _, e := range boxEdges {
		d := corners[e[0]].Sub(corners[e[1]])
		assert.InDelta(t, 2, d.Len(), 1e-9)
	}
}

func TestViewFromWorld(t *testing.T) {
	w := ecs.NewWorld()
	v := ViewFromWorld(w, 100, 100)
	assert.Equal(t, mgl64.Vec3{0, 5, 10}, v.Position)

	cam := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, cam, component.TransformComponent.Kind(), component.NewTransform(mgl64.Vec3{1, 2, 3})))
	require.NoError(t, ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{FOV: 45}))
	v = ViewFromWorld(w, 100, 100)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, v.Position)
	assert.Equal(t, 45.0, v.FOV)
}

func TestFade(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	assert.Equal(t, c, fade(c, 0, 1))
	assert.Equal(t, color.RGBA{R: 100, G: 50, B: 25, A: 127}, fade(c, 0.5, 1))
	assert.Equal(t, color.RGBA{}, fade(c, 2, 1))
	assert.Equal(t, c, fade(c, 5, 0))
}
