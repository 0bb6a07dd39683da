package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/rollerball/common"
	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
	"github.com/milk9111/rollerball/prefabs"
)

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return 0, fmt.Errorf("camera: load spec: %w", err)
	}

	target := cameraSpec.Target
	if target == "" {
		target = component.TagPlayer
	}
	fov := cameraSpec.FOV
	if fov == 0 {
		fov = 60
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.TagComponent.Kind(), &component.Tag{Name: component.TagCamera}); err != nil {
		return 0, fmt.Errorf("camera: add tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), component.NewTransform(mgl64.Vec3{0, cameraSpec.Height, cameraSpec.Distance})); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	if err := ecs.Add(w, camera, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("camera: add input: %w", err)
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		Target:              target,
		Distance:            cameraSpec.Distance,
		Height:              cameraSpec.Height,
		SmoothSpeed:         cameraSpec.SmoothSpeed,
		LookAt:              cameraSpec.LookAt,
		RotationSpeed:       cameraSpec.RotationSpeed,
		RotationSmoothSpeed: cameraSpec.RotationSmoothSpeed,
		FOV:                 fov,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, nil
}

// NewCameraAt places the rig at its resting offset behind target so the
// first frames do not sweep across the level.
func NewCameraAt(w *ecs.World, target mgl64.Vec3) (ecs.Entity, error) {
	camera, err := NewCamera(w)
	if err != nil {
		return 0, err
	}
	cam, _ := ecs.Get(w, camera, component.CameraComponent.Kind())
	transform, ok := ecs.Get(w, camera, component.TransformComponent.Kind())
	if !ok {
		transform = component.NewTransform(mgl64.Vec3{})
	}
	transform.Position = target.Add(mgl64.Vec3{0, cam.Height, cam.Distance})
	if cam.LookAt {
		transform.Rotation = common.LookRotation(target.Sub(transform.Position), common.Up)
	}
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), transform); err != nil {
		return 0, fmt.Errorf("camera: override transform: %w", err)
	}
	return camera, nil
}
