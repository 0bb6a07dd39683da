package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/rollerball/ecs/system"
	"github.com/milk9111/rollerball/prefabs"
)

const stickDeadzone = 0.2

// KeyboardSource polls ebiten for the keys bound in input.yaml, plus the first
// standard gamepad.
type KeyboardSource struct {
	left, right, up, down []ebiten.Key
	jump                  []ebiten.Key
	rotateLeft            []ebiten.Key
	rotateRight           []ebiten.Key
	pause                 []ebiten.Key
}

func NewKeyboardSource(spec *prefabs.InputSpec) (*KeyboardSource, error) {
	if spec == nil {
		return nil, fmt.Errorf("input: nil spec")
	}
	k := &KeyboardSource{}
	bindings := []struct {
		names []string
		keys  *[]ebiten.Key
	}{
		{spec.Left, &k.left},
		{spec.Right, &k.right},
		{spec.Up, &k.up},
		{spec.Down, &k.down},
		{spec.Jump, &k.jump},
		{spec.RotateLeft, &k.rotateLeft},
		{spec.RotateRight, &k.rotateRight},
		{spec.Pause, &k.pause},
	}
	for _, b := range bindings {
		for _, name := range b.names {
			var key ebiten.Key
			if err := key.UnmarshalText([]byte(name)); err != nil {
				return nil, fmt.Errorf("input: key %q: %w", name, err)
			}
			*b.keys = append(*b.keys, key)
		}
	}
	return k, nil
}

func (k *KeyboardSource) Poll() system.RawInput {
	raw := system.RawInput{
		Left:        anyPressed(k.left),
		Right:       anyPressed(k.right),
		Up:          anyPressed(k.up),
		Down:        anyPressed(k.down),
		Jump:        anyPressed(k.jump),
		RotateLeft:  anyPressed(k.rotateLeft),
		RotateRight: anyPressed(k.rotateRight),
		Pause:       anyPressed(k.pause),
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		raw.Left = raw.Left || lx < -stickDeadzone
		raw.Right = raw.Right || lx > stickDeadzone
		raw.Up = raw.Up || ly < -stickDeadzone
		raw.Down = raw.Down || ly > stickDeadzone
		raw.RotateLeft = raw.RotateLeft || rx < -stickDeadzone
		raw.RotateRight = raw.RotateRight || rx > stickDeadzone
		raw.Jump = raw.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		raw.Pause = raw.Pause || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}
	return raw
}

func anyPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}
