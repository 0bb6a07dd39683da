package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// StaticKind is the role of a static collider.
type StaticKind int

const (
	// StaticPlatform is a walkable slab. Bodies land on its top face and
	// rays against its layer hit that face.
	StaticPlatform StaticKind = iota
	// StaticWall blocks horizontal motion over its full height.
	StaticWall
	// StaticTrigger reports overlaps without blocking.
	StaticTrigger
)

// StaticDef describes an axis-aligned box, or a sphere when Radius > 0
// (triggers only).
type StaticDef struct {
	Kind        StaticKind
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
	Radius      float64
	Layer       Layer
	UserData    any
}

// Static is a non-moving collider.
type Static struct {
	world  *World
	kind   StaticKind
	center mgl64.Vec3
	half   mgl64.Vec3
	radius float64
	layer  Layer
	shape  *cp.Shape

	UserData any
}

// AddStatic registers a static collider.
func (w *World) AddStatic(def StaticDef) *Static {
	if w == nil || w.space == nil {
		return nil
	}
	st := &Static{
		world:    w,
		kind:     def.Kind,
		center:   def.Center,
		half:     def.HalfExtents,
		radius:   def.Radius,
		layer:    def.Layer,
		UserData: def.UserData,
	}
	if st.layer == LayerNone {
		switch def.Kind {
		case StaticPlatform:
			st.layer = LayerGround
		case StaticWall:
			st.layer = LayerWall
		default:
			st.layer = LayerTrigger
		}
	}
	if def.Kind != StaticTrigger {
		st.radius = 0
	}

	switch def.Kind {
	case StaticWall:
		st.shape = cp.NewBox2(w.space.StaticBody, st.bb(), 0)
		st.shape.SetFriction(0)
		st.shape.SetCollisionType(collisionTypeWall)
	case StaticTrigger:
		if st.radius > 0 {
			st.shape = cp.NewCircle(w.space.StaticBody, st.radius, cp.Vector{X: st.center[0], Y: st.center[2]})
		} else {
			st.shape = cp.NewBox2(w.space.StaticBody, st.bb(), 0)
		}
		st.shape.SetSensor(true)
		st.shape.SetCollisionType(collisionTypeTrigger)
	}
	if st.shape != nil {
		st.shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(st.layer), cp.ALL_CATEGORIES))
		w.space.AddShape(st.shape)
		if def.Kind == StaticTrigger {
			w.trigShape[st.shape] = st
		}
	}

	w.statics = append(w.statics, st)
	return st
}

// RemoveStatic takes a collider out of the world. Overlaps involving it are
// dropped without exit events.
func (w *World) RemoveStatic(st *Static) {
	if w == nil || st == nil || st.world != w {
		return
	}
	for i, other := range w.statics {
		if other == st {
			w.statics = append(w.statics[:i], w.statics[i+1:]...)
			break
		}
	}
	if st.shape != nil {
		w.space.RemoveShape(st.shape)
		delete(w.trigShape, st.shape)
	}
	w.forgetPairs(func(p contactPair) bool { return p.trigger == st })
	st.world = nil
}

func (st *Static) Kind() StaticKind        { return st.kind }
func (st *Static) Center() mgl64.Vec3      { return st.center }
func (st *Static) HalfExtents() mgl64.Vec3 { return st.half }
func (st *Static) Radius() float64         { return st.radius }
func (st *Static) Layer() Layer            { return st.layer }

// Top returns the height of the upper face.
func (st *Static) Top() float64 {
	if st.radius > 0 {
		return st.center[1] + st.radius
	}
	return st.center[1] + st.half[1]
}

// Bottom returns the height of the lower face.
func (st *Static) Bottom() float64 {
	if st.radius > 0 {
		return st.center[1] - st.radius
	}
	return st.center[1] - st.half[1]
}

func (st *Static) bb() cp.BB {
	return cp.BB{
		L: st.center[0] - st.half[0],
		B: st.center[2] - st.half[2],
		R: st.center[0] + st.half[0],
		T: st.center[2] + st.half[2],
	}
}

func (st *Static) containsXZ(x, z float64) bool {
	if st.radius > 0 {
		return math.Hypot(x-st.center[0], z-st.center[2]) <= st.radius
	}
	return math.Abs(x-st.center[0]) <= st.half[0] && math.Abs(z-st.center[2]) <= st.half[2]
}

func (st *Static) overlapsY(minY, maxY float64) bool {
	return maxY >= st.Bottom() && minY <= st.Top()
}

// Raycast reports whether a ray from origin along dir hits anything on mask
// within maxDistance. Platforms are hit on their top face; walls are hit by
// the horizontal part of the ray within their height.
func (w *World) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask Layer) bool {
	if w == nil || mask == LayerNone || maxDistance <= 0 || dir.Len() == 0 {
		return false
	}
	d := dir.Normalize()

	if d[1] != 0 {
		for _, st := range w.statics {
			if st.kind != StaticPlatform || st.layer&mask == 0 {
				continue
			}
			t := (st.Top() - origin[1]) / d[1]
			if t < 0 || t > maxDistance {
				continue
			}
			hit := origin.Add(d.Mul(t))
			if st.containsXZ(hit[0], hit[2]) {
				return true
			}
		}
	}

	if math.Hypot(d[0], d[2]) < 1e-9 {
		return false
	}
	end := origin.Add(d.Mul(maxDistance))
	blocked := false
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask&^LayerTrigger))
	w.space.SegmentQuery(cp.Vector{X: origin[0], Y: origin[2]}, cp.Vector{X: end[0], Y: end[2]}, 0, filter,
		func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
			if blocked {
				return
			}
			st := w.staticForShape(shape)
			if st == nil || st.kind != StaticWall {
				return
			}
			y := origin[1] + (end[1]-origin[1])*alpha
			if y >= st.Bottom() && y <= st.Top() {
				blocked = true
			}
		}, nil)
	return blocked
}

func (w *World) staticForShape(shape *cp.Shape) *Static {
	for _, st := range w.statics {
		if st.shape == shape {
			return st
		}
	}
	return nil
}
