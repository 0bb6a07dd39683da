package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
)

const (
	nearPlane  = 0.1
	defaultFOV = 60
)

// View projects world points through a camera transform onto a screen of
// Width x Height pixels. The camera looks down its local -Z axis.
type View struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	FOV      float64
	Width    float64
	Height   float64

	inv    mgl64.Quat
	focal  float64
	primed bool
}

// NewView builds a view, defaulting the vertical FOV to 60 degrees.
func NewView(pos mgl64.Vec3, rot mgl64.Quat, fov, width, height float64) View {
	if fov <= 0 {
		fov = defaultFOV
	}
	v := View{Position: pos, Rotation: rot, FOV: fov, Width: width, Height: height}
	v.prime()
	return v
}

// ViewFromWorld uses the first camera entity, or a view from above the
// origin when there is none.
func ViewFromWorld(w *ecs.World, width, height float64) View {
	cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if ok {
		c, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
		if tr, found := ecs.Get(w, cam, component.TransformComponent.Kind()); found {
			return NewView(tr.Position, tr.Rotation, c.FOV, width, height)
		}
	}
	return NewView(mgl64.Vec3{0, 5, 10}, mgl64.QuatIdent(), defaultFOV, width, height)
}

func (v *View) prime() {
	rot := v.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	v.inv = rot.Normalize().Inverse()
	v.focal = (v.Height / 2) / math.Tan(mgl64.DegToRad(v.FOV)/2)
	v.primed = true
}

// ToCamera moves p into camera space.
func (v *View) ToCamera(p mgl64.Vec3) mgl64.Vec3 {
	if !v.primed {
		v.prime()
	}
	return v.inv.Rotate(p.Sub(v.Position))
}

// projectCamera maps a camera-space point in front of the near plane.
func (v *View) projectCamera(c mgl64.Vec3) (float64, float64) {
	depth := -c.Z()
	return v.Width/2 + v.focal*c.X()/depth, v.Height/2 - v.focal*c.Y()/depth
}

// Project returns the screen position of p and its depth, or false when p
// is behind the near plane.
func (v *View) Project(p mgl64.Vec3) (x, y, depth float64, ok bool) {
	c := v.ToCamera(p)
	if -c.Z() < nearPlane {
		return 0, 0, 0, false
	}
	x, y = v.projectCamera(c)
	return x, y, -c.Z(), true
}

// ProjectSegment clips a world segment to the near plane and projects it.
func (v *View) ProjectSegment(a, b mgl64.Vec3) (x0, y0, x1, y1 float64, ok bool) {
	ca, cb := v.ToCamera(a), v.ToCamera(b)
	da, db := -ca.Z(), -cb.Z()
	if da < nearPlane && db < nearPlane {
		return 0, 0, 0, 0, false
	}
	if da < nearPlane {
		t := (nearPlane - da) / (db - da)
		ca = ca.Add(cb.Sub(ca).Mul(t))
	} else if db < nearPlane {
		t := (nearPlane - db) / (da - db)
		cb = cb.Add(ca.Sub(cb).Mul(t))
	}
	x0, y0 = v.projectCamera(ca)
	x1, y1 = v.projectCamera(cb)
	return x0, y0, x1, y1, true
}

// ScreenRadius is the projected size of a sphere of radius r at depth.
func (v *View) ScreenRadius(r, depth float64) float64 {
	if !v.primed {
		v.prime()
	}
	if depth <= 0 {
		return 0
	}
	return v.focal * r / depth
}

var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// BoxCorners lists the corners of an axis-aligned box. Bit 0 of the index
// selects +X, bit 1 +Y and bit 2 +Z.
func BoxCorners(center, half mgl64.Vec3) [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	for i := range out {
		c := center
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				c[axis] += half[axis]
			} else {
				c[axis] -= half[axis]
			}
		}
		out[i] = c
	}
	return out
}
