package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
	"github.com/milk9111/rollerball/physics"
	"github.com/milk9111/rollerball/prefabs"
)

var defaultPlayerColor = color.RGBA{R: 232, G: 232, B: 240, A: 255}

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return NewPlayerAt(w, mgl64.Vec3{}, mgl64.QuatIdent())
}

// NewPlayerAt builds the rolling ball from player.yaml. The physics body is
// attached later by the physics system.
func NewPlayerAt(w *ecs.World, pos mgl64.Vec3, rot mgl64.Quat) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	mask, err := spec.GroundMask()
	if err != nil {
		log.Warn().Err(err).Str("entity", "player").Msg("ignoring unknown ground layers")
	}

	tag := spec.Tag
	if tag == "" {
		tag = component.TagPlayer
	}

	e := ecs.CreateEntity(w)
	tr := component.NewTransform(pos)
	tr.Rotation = rot
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tr); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.TagComponent.Kind(), &component.Tag{Name: tag}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{
		Radius: spec.Radius,
		Mass:   spec.Mass,
		Layer:  physics.LayerPlayer,
	}); err != nil {
		return 0, fmt.Errorf("player: add rigid body: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerControllerComponent.Kind(), &component.PlayerController{
		GroundCheckDistance: spec.GroundCheckDistance,
		GroundLayer:         mask,
		GroundDrag:          spec.GroundDrag,
		AirDrag:             spec.AirDrag,
	}); err != nil {
		return 0, fmt.Errorf("player: add controller: %w", err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: spec.Color.RGBAOr(defaultPlayerColor),
	}); err != nil {
		return 0, fmt.Errorf("player: add appearance: %w", err)
	}

	return e, nil
}
