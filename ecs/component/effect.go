package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

type EffectKind int

const (
	EffectCelebration EffectKind = iota
	EffectPickupSpeed
	EffectPickupJump
	EffectCheckpoint
)

func (k EffectKind) String() string {
	switch k {
	case EffectCelebration:
		return "celebration"
	case EffectPickupSpeed:
		return "pickup_speed"
	case EffectPickupJump:
		return "pickup_jump"
	case EffectCheckpoint:
		return "checkpoint"
	default:
		return "unknown"
	}
}

// EffectParams tune a particle burst.
type EffectParams struct {
	Count    int     `yaml:"count"`
	Lifetime float64 `yaml:"lifetime"`
	Speed    float64 `yaml:"speed"`
	Radius   float64 `yaml:"radius"`
	Size     float64 `yaml:"size"`
	Upward   float64 `yaml:"upward"`
	Spiral   float64 `yaml:"spiral"`
	Gravity  float64 `yaml:"gravity"`
}

// Burst emits Count particles At seconds after the effect starts.
type Burst struct {
	At    float64
	Count int
	Fired bool
}

type Particle struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Age      float64
	Lifetime float64
	Size     float64
	Color    color.RGBA
}

// Effect is a short-lived cosmetic particle burst.
type Effect struct {
	Kind      EffectKind
	Origin    mgl64.Vec3
	Params    EffectParams
	Palette   []color.RGBA
	Seed      int64
	Age       float64
	Bursts    []Burst
	Particles []Particle
}

var EffectComponent = NewComponent[Effect]()

// Appearance is the debug draw color of an entity.
type Appearance struct {
	Color color.RGBA
	// Active replaces Color once a checkpoint has been activated.
	Active color.RGBA
}

var AppearanceComponent = NewComponent[Appearance]()
