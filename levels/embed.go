package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a hand-authored layout: static geometry plus gameplay markers.
type Level struct {
	Name     string   `json:"name"`
	Blocks   []Block  `json:"blocks"`
	Entities []Entity `json:"entities,omitempty"`
}

// Block is an axis-aligned box of level geometry.
type Block struct {
	Type        string     `json:"type"`
	Center      [3]float64 `json:"center"`
	HalfExtents [3]float64 `json:"half_extents"`
	Color       string     `json:"color,omitempty"`
}

// Entity is a gameplay marker such as the spawn point or a powerup.
type Entity struct {
	Type     string                 `json:"type"`
	Position [3]float64             `json:"position"`
	Yaw      float64                `json:"yaw,omitempty"`
	Props    map[string]interface{} `json:"props,omitempty"`
}

const (
	BlockPlatform = "platform"
	BlockWall     = "wall"

	EntitySpawn      = "spawn"
	EntityCheckpoint = "checkpoint"
	EntityPowerup    = "powerup"
	EntityFinish     = "finish"
)

func (b Block) CenterVec() mgl64.Vec3 { return mgl64.Vec3(b.Center) }
func (b Block) HalfVec() mgl64.Vec3   { return mgl64.Vec3(b.HalfExtents) }

func (e Entity) PositionVec() mgl64.Vec3 { return mgl64.Vec3(e.Position) }

// Rotation turns Yaw (degrees about +Y) into a quaternion.
func (e Entity) Rotation() mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(e.Yaw), mgl64.Vec3{0, 1, 0})
}

// Prop returns a string property, or "" when it is missing or not a string.
func (e Entity) Prop(key string) string {
	if e.Props == nil {
		return ""
	}
	s, _ := e.Props[key].(string)
	return s
}

// PropFloat returns a numeric property, or fallback.
func (e Entity) PropFloat(key string, fallback float64) float64 {
	if e.Props == nil {
		return fallback
	}
	if f, ok := e.Props[key].(float64); ok {
		return f
	}
	return fallback
}

// Validate checks block and entity types. A level without a spawn marker is
// still playable, so that is not an error here.
func (l *Level) Validate() error {
	for i, b := range l.Blocks {
		switch b.Type {
		case BlockPlatform, BlockWall:
		default:
			return fmt.Errorf("block %d: unknown type %q", i, b.Type)
		}
		for axis, h := range b.HalfExtents {
			if h <= 0 {
				return fmt.Errorf("block %d: half extent %d must be positive", i, axis)
			}
		}
	}
	for i, e := range l.Entities {
		switch e.Type {
		case EntitySpawn, EntityCheckpoint, EntityFinish:
		case EntityPowerup:
			if e.Prop("prefab") == "" {
				return fmt.Errorf("entity %d: powerup without prefab", i)
			}
		default:
			return fmt.Errorf("entity %d: unknown type %q", i, e.Type)
		}
	}
	return nil
}

// EntitiesOf returns the entities of one type in file order.
func (l *Level) EntitiesOf(typ string) []Entity {
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func LoadLevelFromFS(name string) (*Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("validate level %s: %w", lvl.Name, err)
	}
	return &lvl, nil
}

// Names lists the embedded levels without their extension.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ".json"); ok {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
