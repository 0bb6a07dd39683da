package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
	"github.com/milk9111/rollerball/physics"
)

var (
	defaultPlatformColor = color.RGBA{R: 60, G: 110, B: 158, A: 255}
	defaultWallColor     = color.RGBA{R: 42, G: 61, B: 82, A: 255}
)

func NewPlatform(w *ecs.World, center, half mgl64.Vec3, c color.RGBA) (ecs.Entity, error) {
	if c == (color.RGBA{}) {
		c = defaultPlatformColor
	}
	return newStatic(w, "platform", physics.StaticPlatform, center, half, c)
}

func NewWall(w *ecs.World, center, half mgl64.Vec3, c color.RGBA) (ecs.Entity, error) {
	if c == (color.RGBA{}) {
		c = defaultWallColor
	}
	return newStatic(w, "wall", physics.StaticWall, center, half, c)
}

func newStatic(w *ecs.World, name string, kind physics.StaticKind, center, half mgl64.Vec3, c color.RGBA) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(center)); err != nil {
		return 0, fmt.Errorf("%s: add transform: %w", name, err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Kind:        kind,
		HalfExtents: half,
	}); err != nil {
		return 0, fmt.Errorf("%s: add collider: %w", name, err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{Color: c}); err != nil {
		return 0, fmt.Errorf("%s: add appearance: %w", name, err)
	}
	return e, nil
}

// NewSpawnMarker places the tagged marker the session reads its first
// respawn point from.
func NewSpawnMarker(w *ecs.World, pos mgl64.Vec3, rot mgl64.Quat) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	tr := component.NewTransform(pos)
	tr.Rotation = rot
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tr); err != nil {
		return 0, fmt.Errorf("spawn: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.TagComponent.Kind(), &component.Tag{Name: component.TagSpawn}); err != nil {
		return 0, fmt.Errorf("spawn: add tag: %w", err)
	}
	return e, nil
}
