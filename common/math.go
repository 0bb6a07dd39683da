package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// Epsilon below which a flattened direction counts as degenerate.
const Epsilon = 1e-5

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Down    = mgl64.Vec3{0, -1, 0}
	Forward = mgl64.Vec3{0, 0, -1}
	Right   = mgl64.Vec3{1, 0, 0}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// LerpVec3 interpolates with t clamped to [0,1].
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)
	return a.Add(b.Sub(a).Mul(t))
}

// Flatten drops the vertical component of v and normalizes what is left.
// ok is false when the horizontal part is too short to normalize.
func Flatten(v mgl64.Vec3) (mgl64.Vec3, bool) {
	v[1] = 0
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// HorizontalMag returns the length of v projected onto the XZ plane.
func HorizontalMag(v mgl64.Vec3) float64 {
	return math.Hypot(v[0], v[2])
}

// LookRotation returns the rotation that maps Forward onto forward with the
// given up hint. A zero forward yields the identity.
func LookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	if forward.Len() < Epsilon {
		return mgl64.QuatIdent()
	}
	f := forward.Normalize()
	r := f.Cross(up)
	if r.Len() < Epsilon {
		// looking straight along up; pick any perpendicular right axis
		r = f.Cross(mgl64.Vec3{0, 0, 1})
		if r.Len() < Epsilon {
			r = f.Cross(Right)
		}
	}
	r = r.Normalize()
	u := r.Cross(f)
	back := f.Mul(-1)
	m := mgl64.Mat4FromCols(r.Vec4(0), u.Vec4(0), back.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
	return mgl64.Mat4ToQuat(m).Normalize()
}

// Slerp interpolates along the shortest arc with t clamped to [0,1].
func Slerp(from, to mgl64.Quat, t float64) mgl64.Quat {
	t = Clamp01(t)
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl64.QuatSlerp(from, to, t).Normalize()
}

// QuatApproxEqual treats q and -q as the same rotation.
func QuatApproxEqual(a, b mgl64.Quat, eps float64) bool {
	return math.Abs(math.Abs(a.Normalize().Dot(b.Normalize()))-1) <= eps
}
