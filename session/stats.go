package session

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Stats are the movement tunables shared by every controller in a session.
type Stats struct {
	GroundForce float64 `yaml:"ground_force"`
	AirForce    float64 `yaml:"air_force"`
	MaxSpeed    float64 `yaml:"max_speed"`
	JumpForce   float64 `yaml:"jump_force"`
}

// DefaultStats returns the values a fresh session starts with.
func DefaultStats() Stats {
	return Stats{
		GroundForce: 10,
		AirForce:    2,
		MaxSpeed:    5,
		JumpForce:   5,
	}
}

// StatKind selects which stats a powerup raises.
type StatKind int

const (
	StatSpeed StatKind = iota
	StatJump
)

func (k StatKind) String() string {
	switch k {
	case StatSpeed:
		return "speed"
	case StatJump:
		return "jump"
	default:
		return fmt.Sprintf("stat(%d)", int(k))
	}
}

// ParseStatKind accepts the names used in prefab files.
func ParseStatKind(s string) (StatKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "speed":
		return StatSpeed, nil
	case "jump":
		return StatJump, nil
	default:
		return 0, fmt.Errorf("session: unknown stat kind %q", s)
	}
}

// UnmarshalText lets StatKind be decoded straight from yaml and json.
func (k *StatKind) UnmarshalText(text []byte) error {
	v, err := ParseStatKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// MarshalText writes the prefab name of k.
func (k StatKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// RespawnPoint is where the player returns after falling.
type RespawnPoint struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}
