package system

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
	"github.com/milk9111/rollerball/session"
)

// StatIncreaser applies powerups.
type StatIncreaser interface {
	IncreaseStat(kind session.StatKind, amount float64)
}

// PickupCollectSystem applies a powerup the first time the player enters it
// and destroys it on the spot, so a second overlap in the same frame finds
// nothing.
type PickupCollectSystem struct {
	stats   StatIncreaser
	effects EffectSpawner
	logger  zerolog.Logger
}

func NewPickupCollectSystem(stats StatIncreaser, effects EffectSpawner) *PickupCollectSystem {
	return &PickupCollectSystem{
		stats:   stats,
		effects: effects,
		logger:  log.With().Str("system", "pickup_collect").Logger(),
	}
}

func (s *PickupCollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range ecs.TriggerEvents(w, ecs.TriggerEnter) {
		powerup, ok := ecs.Get(w, evt.Trigger, component.PowerupComponent.Kind())
		if !ok || !hasTag(w, evt.Other, component.TagPlayer) {
			continue
		}
		stat, amount := powerup.Stat, powerup.Amount

		pos, _ := positionOf(w, evt.Trigger)
		ecs.Remove(w, evt.Trigger, component.PowerupComponent.Kind())
		ecs.DestroyEntity(w, evt.Trigger)

		if s.stats != nil {
			s.stats.IncreaseStat(stat, amount)
		}
		if s.effects != nil {
			s.effects.SpawnPickup(pos, stat)
		}
		s.logger.Info().Stringer("stat", stat).Float64("amount", amount).Msg("powerup collected")
	}
}
