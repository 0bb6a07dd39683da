package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
)

// RawInput is the level state of every gameplay key for one frame.
type RawInput struct {
	Left        bool `yaml:"left"`
	Right       bool `yaml:"right"`
	Up          bool `yaml:"up"`
	Down        bool `yaml:"down"`
	Jump        bool `yaml:"jump"`
	RotateLeft  bool `yaml:"rotate_left"`
	RotateRight bool `yaml:"rotate_right"`
	Pause       bool `yaml:"pause"`
}

// InputSource supplies one RawInput per frame.
type InputSource interface {
	Poll() RawInput
}

// InputSourceFunc adapts a function to InputSource.
type InputSourceFunc func() RawInput

func (f InputSourceFunc) Poll() RawInput { return f() }

type InputSystem struct {
	source    InputSource
	prevJump  bool
	prevPause bool
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

// SetSource swaps the input source, keeping edge state.
func (s *InputSystem) SetSource(source InputSource) {
	s.source = source
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var raw RawInput
	if s.source != nil {
		raw = s.source.Poll()
	}

	move := MoveVector(raw)
	rotate := 0.0
	if raw.RotateLeft {
		rotate = -1
	} else if raw.RotateRight {
		rotate = 1
	}
	jumpPressed := raw.Jump && !s.prevJump
	pausePressed := raw.Pause && !s.prevPause
	s.prevJump = raw.Jump
	s.prevPause = raw.Pause

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.Move = move
		input.Jump = raw.Jump
		input.JumpPressed = jumpPressed
		input.Rotate = rotate
		input.Pause = pausePressed
	})
}

// MoveVector turns direction keys into a move intent. Left wins over right
// and down wins over up; diagonals are normalized.
func MoveVector(raw RawInput) mgl64.Vec2 {
	var v mgl64.Vec2
	if raw.Left {
		v[0] = -1
	} else if raw.Right {
		v[0] = 1
	}
	if raw.Down {
		v[1] = -1
	} else if raw.Up {
		v[1] = 1
	}
	if l := v.Len(); l > 1 {
		v = v.Mul(1 / l)
	}
	return v
}
