package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
	"github.com/milk9111/rollerball/physics"
	"github.com/milk9111/rollerball/prefabs"
)

var (
	defaultCheckpointInactive = color.RGBA{R: 122, G: 122, B: 122, A: 255}
	defaultCheckpointActive   = color.RGBA{R: 90, G: 230, B: 120, A: 255}
	defaultFinishColor        = color.RGBA{R: 255, G: 216, B: 74, A: 255}
	defaultPowerupColor       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func NewCheckpoint(w *ecs.World, name string, pos mgl64.Vec3, rot mgl64.Quat) (ecs.Entity, error) {
	spec, err := prefabs.LoadCheckpointSpec()
	if err != nil {
		return 0, fmt.Errorf("checkpoint: load spec: %w", err)
	}
	half := spec.HalfExtents.Vec3()
	if half == (mgl64.Vec3{}) {
		half = mgl64.Vec3{1, 1.5, 1}
	}

	e := ecs.CreateEntity(w)
	tr := component.NewTransform(pos)
	tr.Rotation = rot
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tr); err != nil {
		return 0, fmt.Errorf("checkpoint: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Kind:        physics.StaticTrigger,
		HalfExtents: half,
	}); err != nil {
		return 0, fmt.Errorf("checkpoint: add collider: %w", err)
	}
	if err := ecs.Add(w, e, component.CheckpointComponent.Kind(), &component.Checkpoint{Name: name}); err != nil {
		return 0, fmt.Errorf("checkpoint: add checkpoint: %w", err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{
		Color:  spec.InactiveColor.RGBAOr(defaultCheckpointInactive),
		Active: spec.ActiveColor.RGBAOr(defaultCheckpointActive),
	}); err != nil {
		return 0, fmt.Errorf("checkpoint: add appearance: %w", err)
	}
	return e, nil
}

// NewPowerup builds a pickup from a powerup prefab such as speed_boost.yaml.
func NewPowerup(w *ecs.World, prefab string, pos mgl64.Vec3) (ecs.Entity, error) {
	spec, err := prefabs.LoadPowerupSpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("powerup: load spec: %w", err)
	}
	radius := spec.Radius
	if radius <= 0 {
		radius = 0.5
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(pos)); err != nil {
		return 0, fmt.Errorf("powerup: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Kind:   physics.StaticTrigger,
		Radius: radius,
	}); err != nil {
		return 0, fmt.Errorf("powerup: add collider: %w", err)
	}
	if err := ecs.Add(w, e, component.PowerupComponent.Kind(), &component.Powerup{
		Stat:   spec.Stat,
		Amount: spec.Amount,
	}); err != nil {
		return 0, fmt.Errorf("powerup: add powerup: %w", err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: spec.Color.RGBAOr(defaultPowerupColor),
	}); err != nil {
		return 0, fmt.Errorf("powerup: add appearance: %w", err)
	}
	return e, nil
}

func NewFinish(w *ecs.World, pos mgl64.Vec3) (ecs.Entity, error) {
	spec, err := prefabs.LoadFinishSpec()
	if err != nil {
		return 0, fmt.Errorf("finish: load spec: %w", err)
	}
	half := spec.HalfExtents.Vec3()
	if half == (mgl64.Vec3{}) {
		half = mgl64.Vec3{1.5, 1.5, 1.5}
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(pos)); err != nil {
		return 0, fmt.Errorf("finish: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Kind:        physics.StaticTrigger,
		HalfExtents: half,
	}); err != nil {
		return 0, fmt.Errorf("finish: add collider: %w", err)
	}
	if err := ecs.Add(w, e, component.LevelFinishComponent.Kind(), &component.LevelFinish{Script: spec.Script}); err != nil {
		return 0, fmt.Errorf("finish: add level finish: %w", err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: spec.Color.RGBAOr(defaultFinishColor),
	}); err != nil {
		return 0, fmt.Errorf("finish: add appearance: %w", err)
	}
	return e, nil
}
