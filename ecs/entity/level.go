package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
	"github.com/milk9111/rollerball/levels"
	"github.com/milk9111/rollerball/prefabs"
)

// Loaded holds the entities a level load created that callers need to reach.
type Loaded struct {
	Player ecs.Entity
	Camera ecs.Entity
	Spawn  ecs.Entity
	// HasSpawn is false when the level had no spawn marker.
	HasSpawn bool
}

// LoadLevelToWorld creates the level geometry and markers, then the player at
// the spawn marker (or the origin) and the camera behind it.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) (*Loaded, error) {
	if lvl == nil {
		return nil, fmt.Errorf("level: nil level")
	}
	logger := log.With().Str("level", lvl.Name).Logger()

	for i, b := range lvl.Blocks {
		c := blockColor(b.Color)
		var err error
		switch b.Type {
		case levels.BlockPlatform:
			_, err = NewPlatform(w, b.CenterVec(), b.HalfVec(), c)
		case levels.BlockWall:
			_, err = NewWall(w, b.CenterVec(), b.HalfVec(), c)
		default:
			err = fmt.Errorf("unknown block type %q", b.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("level: block %d: %w", i, err)
		}
	}

	out := &Loaded{}
	spawnPos := mgl64.Vec3{}
	spawnRot := mgl64.QuatIdent()
	for i, e := range lvl.Entities {
		var err error
		switch e.Type {
		case levels.EntitySpawn:
			if out.HasSpawn {
				logger.Warn().Int("index", i).Msg("extra spawn marker ignored")
				continue
			}
			spawnPos, spawnRot = e.PositionVec(), e.Rotation()
			out.Spawn, err = NewSpawnMarker(w, spawnPos, spawnRot)
			out.HasSpawn = err == nil
		case levels.EntityCheckpoint:
			name := e.Prop("name")
			if name == "" {
				name = fmt.Sprintf("checkpoint_%d", i)
			}
			_, err = NewCheckpoint(w, name, e.PositionVec(), e.Rotation())
		case levels.EntityPowerup:
			var pickup ecs.Entity
			pickup, err = NewPowerup(w, e.Prop("prefab"), e.PositionVec())
			if amount := e.PropFloat("amount", 0); err == nil && amount > 0 {
				p, _ := ecs.Get(w, pickup, component.PowerupComponent.Kind())
				p.Amount = amount
			}
		case levels.EntityFinish:
			_, err = NewFinish(w, e.PositionVec())
		default:
			err = fmt.Errorf("unknown entity type %q", e.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("level: entity %d: %w", i, err)
		}
	}

	var err error
	if out.Player, err = NewPlayerAt(w, spawnPos, spawnRot); err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	if out.Camera, err = NewCameraAt(w, spawnPos); err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}

	logger.Info().Int("blocks", len(lvl.Blocks)).Int("entities", len(lvl.Entities)).Msg("level loaded")
	return out, nil
}

func blockColor(hex string) color.RGBA {
	if hex == "" {
		return color.RGBA{}
	}
	c, err := prefabs.ParseHexColor(hex)
	if err != nil {
		log.Warn().Err(err).Str("color", hex).Msg("bad block color")
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
