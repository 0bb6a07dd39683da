package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
)

// CheckpointSetter records a new respawn point.
type CheckpointSetter interface {
	SetCheckpoint(pos mgl64.Vec3, rot mgl64.Quat)
}

// CheckpointSystem activates checkpoints the player enters. Each one fires
// once.
type CheckpointSystem struct {
	session CheckpointSetter
	effects EffectSpawner
	logger  zerolog.Logger
}

func NewCheckpointSystem(session CheckpointSetter, effects EffectSpawner) *CheckpointSystem {
	return &CheckpointSystem{
		session: session,
		effects: effects,
		logger:  log.With().Str("system", "checkpoint").Logger(),
	}
}

func (s *CheckpointSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range ecs.TriggerEvents(w, ecs.TriggerEnter) {
		cp, ok := ecs.Get(w, evt.Trigger, component.CheckpointComponent.Kind())
		if !ok || cp.Activated || !hasTag(w, evt.Other, component.TagPlayer) {
			continue
		}
		t, ok := ecs.Get(w, evt.Trigger, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		cp.Activated = true
		if s.session != nil {
			s.session.SetCheckpoint(t.Position, t.Rotation)
		}
		if s.effects != nil {
			s.effects.SpawnCheckpoint(t.Position)
		}
		s.logger.Info().Str("checkpoint", cp.Name).Msg("checkpoint activated")
	}
}
