package render

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
	"github.com/milk9111/rollerball/physics"
)

var (
	backgroundColor = color.RGBA{R: 18, G: 22, B: 30, A: 255}
	fallbackColor   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	shadowColor     = color.RGBA{A: 90}
)

// Renderer draws the world as a wireframe through the main camera.
type Renderer struct {
	Debug bool

	items []drawItem
}

type drawItem struct {
	depth float64
	draw  func(screen *ebiten.Image)
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Draw(screen *ebiten.Image, w *ecs.World) {
	if screen == nil || w == nil {
		return
	}
	screen.Fill(backgroundColor)
	b := screen.Bounds()
	view := ViewFromWorld(w, float64(b.Dx()), float64(b.Dy()))

	r.items = r.items[:0]
	r.collectColliders(w, &view)
	r.collectBodies(w, &view)
	r.collectEffects(w, &view)

	sort.SliceStable(r.items, func(i, j int) bool { return r.items[i].depth > r.items[j].depth })
	for _, item := range r.items {
		item.draw(screen)
	}

	if r.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %0.1f  entities: %d", ebiten.ActualTPS(), len(ecs.Entities(w))), 4, 4)
	}
}

func (r *Renderer) collectColliders(w *ecs.World, view *View) {
	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, col *component.Collider, tr *component.Transform) {
		clr := colorOf(w, e)
		if cp, ok := ecs.Get(w, e, component.CheckpointComponent.Kind()); ok && cp.Activated {
			if a, found := ecs.Get(w, e, component.AppearanceComponent.Kind()); found && a.Active != (color.RGBA{}) {
				clr = a.Active
			}
		}
		if fin, ok := ecs.Get(w, e, component.LevelFinishComponent.Kind()); ok && fin.Completed {
			clr = blend(clr, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}

		_, _, depth, visible := view.Project(tr.Position)
		if !visible {
			depth = 0
		}

		if col.Kind == physics.StaticTrigger && col.Radius > 0 {
			center, radius := tr.Position, col.Radius
			r.items = append(r.items, drawItem{depth: depth, draw: func(screen *ebiten.Image) {
				strokeSphere(screen, view, center, radius, clr)
			}})
			return
		}
		corners := BoxCorners(tr.Position, col.HalfExtents)
		width := float32(1)
		if col.Kind == physics.StaticPlatform {
			width = 2
		}
		r.items = append(r.items, drawItem{depth: depth, draw: func(screen *ebiten.Image) {
			strokeBox(screen, view, corners, width, clr)
		}})
	})
}

func (r *Renderer) collectBodies(w *ecs.World, view *View) {
	ecs.ForEach2(w, component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rb *component.RigidBody, tr *component.Transform) {
		radius := rb.Radius
		if radius <= 0 {
			radius = 0.5
		}
		center, rot := tr.Position, tr.Rotation
		clr := colorOf(w, e)
		_, _, depth, ok := view.Project(center)
		if !ok {
			return
		}
		shadow := mgl64.Vec3{center.X(), center.Y() - radius + 0.01, center.Z()}
		r.items = append(r.items, drawItem{depth: depth, draw: func(screen *ebiten.Image) {
			if sx, sy, sd, ok := view.Project(shadow); ok {
				sr := float32(view.ScreenRadius(radius*0.8, sd))
				vector.FillRect(screen, float32(sx)-sr, float32(sy)-sr/4, sr*2, sr/2, shadowColor, true)
			}
			strokeSphere(screen, view, center, radius, clr)
			// spin marker
			marker := center.Add(rot.Rotate(mgl64.Vec3{0, radius, 0}))
			if x0, y0, x1, y1, ok := view.ProjectSegment(center, marker); ok {
				vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, clr, true)
			}
		}})
	})
}

func (r *Renderer) collectEffects(w *ecs.World, view *View) {
	ecs.ForEach(w, component.EffectComponent.Kind(), func(e ecs.Entity, fx *component.Effect) {
		for _, p := range fx.Particles {
			x, y, depth, ok := view.Project(p.Position)
			if !ok {
				continue
			}
			size := float32(view.ScreenRadius(p.Size, depth))
			if size < 1 {
				size = 1
			}
			clr := fade(p.Color, p.Age, p.Lifetime)
			r.items = append(r.items, drawItem{depth: depth, draw: func(screen *ebiten.Image) {
				vector.FillRect(screen, float32(x)-size/2, float32(y)-size/2, size, size, clr, false)
			}})
		}
	})
}

func strokeBox(screen *ebiten.Image, view *View, corners [8]mgl64.Vec3, width float32, clr color.RGBA) {
	for _, edge := range boxEdges {
		x0, y0, x1, y1, ok := view.ProjectSegment(corners[edge[0]], corners[edge[1]])
		if !ok {
			continue
		}
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), width, clr, true)
	}
}

func strokeSphere(screen *ebiten.Image, view *View, center mgl64.Vec3, radius float64, clr color.RGBA) {
	x, y, depth, ok := view.Project(center)
	if !ok {
		return
	}
	sr := float32(view.ScreenRadius(radius, depth))
	if sr < 1 {
		sr = 1
	}
	vector.StrokeCircle(screen, float32(x), float32(y), sr, 1.5, clr, true)
}

func colorOf(w *ecs.World, e ecs.Entity) color.RGBA {
	if a, ok := ecs.Get(w, e, component.AppearanceComponent.Kind()); ok && a.Color != (color.RGBA{}) {
		return a.Color
	}
	return fallbackColor
}

func blend(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
		A: uint8((uint16(a.A) + uint16(b.A)) / 2),
	}
}

// fade scales a premultiplied color toward transparent over the particle's
// lifetime.
func fade(c color.RGBA, age, lifetime float64) color.RGBA {
	if lifetime <= 0 {
		return c
	}
	k := 1 - age/lifetime
	if k <= 0 {
		return color.RGBA{}
	}
	if k > 1 {
		k = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: uint8(float64(c.A) * k),
	}
}
