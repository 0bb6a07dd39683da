package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/rollerball/physics"
	"github.com/milk9111/rollerball/session"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type GameSpec struct {
	Name        string         `yaml:"name"`
	FixedDT     float64        `yaml:"fixed_dt"`
	MaxSubsteps int            `yaml:"max_substeps"`
	Gravity     float64        `yaml:"gravity"`
	LandingSlop float64        `yaml:"landing_slop"`
	Session     session.Config `yaml:"session"`
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PlayerSpec struct {
	Name                string     `yaml:"name"`
	Tag                 string     `yaml:"tag"`
	Radius              float64    `yaml:"radius"`
	Mass                float64    `yaml:"mass"`
	GroundCheckDistance float64    `yaml:"ground_check_distance"`
	GroundLayers        []string   `yaml:"ground_layers"`
	GroundDrag          float64    `yaml:"ground_drag"`
	AirDrag             float64    `yaml:"air_drag"`
	Color               *YAMLColor `yaml:"color"`
}

// GroundMask resolves GroundLayers. Unknown names are returned as an error
// alongside the mask built from the known ones.
func (s PlayerSpec) GroundMask() (physics.Layer, error) {
	mask, unknown := physics.ParseLayers(s.GroundLayers...)
	if len(unknown) > 0 {
		return mask, fmt.Errorf("prefabs: unknown ground layers %s", strings.Join(unknown, ", "))
	}
	return mask, nil
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CameraSpec struct {
	Name                string  `yaml:"name"`
	Target              string  `yaml:"target"`
	Distance            float64 `yaml:"distance"`
	Height              float64 `yaml:"height"`
	SmoothSpeed         float64 `yaml:"smooth_speed"`
	LookAt              bool    `yaml:"look_at"`
	RotationSpeed       float64 `yaml:"rotation_speed"`
	RotationSmoothSpeed float64 `yaml:"rotation_smooth_speed"`
	FOV                 float64 `yaml:"fov"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PowerupSpec struct {
	Name   string           `yaml:"name"`
	Stat   session.StatKind `yaml:"stat"`
	Amount float64          `yaml:"amount"`
	Radius float64          `yaml:"radius"`
	Color  *YAMLColor       `yaml:"color"`
}

// LoadPowerupSpec reads a powerup prefab such as speed_boost.yaml.
func LoadPowerupSpec(filename string) (*PowerupSpec, error) {
	spec, err := LoadSpec[PowerupSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CheckpointSpec struct {
	Name          string     `yaml:"name"`
	HalfExtents   Vec3Spec   `yaml:"half_extents"`
	InactiveColor *YAMLColor `yaml:"inactive_color"`
	ActiveColor   *YAMLColor `yaml:"active_color"`
}

func LoadCheckpointSpec() (*CheckpointSpec, error) {
	spec, err := LoadSpec[CheckpointSpec]("checkpoint.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type FinishSpec struct {
	Name        string     `yaml:"name"`
	HalfExtents Vec3Spec   `yaml:"half_extents"`
	Script      string     `yaml:"script"`
	Color       *YAMLColor `yaml:"color"`
}

func LoadFinishSpec() (*FinishSpec, error) {
	spec, err := LoadSpec[FinishSpec]("finish.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// InputSpec maps gameplay actions to key names.
type InputSpec struct {
	Left        []string `yaml:"left"`
	Right       []string `yaml:"right"`
	Up          []string `yaml:"up"`
	Down        []string `yaml:"down"`
	Jump        []string `yaml:"jump"`
	RotateLeft  []string `yaml:"rotate_left"`
	RotateRight []string `yaml:"rotate_right"`
	Pause       []string `yaml:"pause"`
}

func LoadInputSpec() (*InputSpec, error) {
	spec, err := LoadSpec[InputSpec]("input.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Vec3Spec is a vector written as a three element list.
type Vec3Spec [3]float64

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

type YAMLColor struct {
	color.Color
}

// RGBAOr returns the color as color.RGBA, or fallback when c is unset.
func (c *YAMLColor) RGBAOr(fallback color.RGBA) color.RGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseHexColor reads "#rrggbb" or "#rrggbbaa"; the leading # is optional.
func ParseHexColor(value string) (color.NRGBA, error) {
	s := strings.TrimPrefix(value, "#")

	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
