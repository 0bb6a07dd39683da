package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
	"github.com/milk9111/rollerball/session"
)

// ScriptLoader returns the source of a named script.
type ScriptLoader func(name string) ([]byte, error)

// StatsReader exposes the current session stats.
type StatsReader interface {
	Stats() session.Stats
}

// LevelFinishSystem reports the player reaching a finish volume. On the first
// completion it celebrates and runs the finish script, whose `message`
// global becomes the completion message.
type LevelFinishSystem struct {
	load     ScriptLoader
	stats    StatsReader
	effects  EffectSpawner
	onFinish func(message string)
	compiled map[string]*tengo.Compiled
	logger   zerolog.Logger
}

func NewLevelFinishSystem(load ScriptLoader, stats StatsReader, effects EffectSpawner) *LevelFinishSystem {
	return &LevelFinishSystem{
		load:     load,
		stats:    stats,
		effects:  effects,
		compiled: make(map[string]*tengo.Compiled),
		logger:   log.With().Str("system", "level_finish").Logger(),
	}
}

// OnFinish registers a callback for the first completion of each finish.
func (s *LevelFinishSystem) OnFinish(fn func(message string)) {
	s.onFinish = fn
}

func (s *LevelFinishSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range ecs.TriggerEvents(w, ecs.TriggerEnter) {
		finish, ok := ecs.Get(w, evt.Trigger, component.LevelFinishComponent.Kind())
		if !ok || !hasTag(w, evt.Other, component.TagPlayer) {
			continue
		}
		s.logger.Info().Msg("level done")
		if finish.Completed {
			continue
		}
		finish.Completed = true

		if s.effects != nil {
			if pos, ok := positionOf(w, evt.Trigger); ok {
				s.effects.SpawnCelebration(pos)
			}
		}

		msg, err := s.runScript(w, finish.Script)
		if err != nil {
			s.logger.Error().Err(err).Str("script", finish.Script).Msg("finish script failed")
		}
		finish.Message = msg
		if msg != "" {
			s.logger.Info().Str("message", msg).Msg("level complete")
		}
		if s.onFinish != nil {
			s.onFinish(msg)
		}
	}
}

func (s *LevelFinishSystem) runScript(w *ecs.World, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || s.load == nil {
		return "", nil
	}

	compiled, err := s.compile(name)
	if err != nil {
		return "", err
	}

	stats := session.DefaultStats()
	if s.stats != nil {
		stats = s.stats.Stats()
	}
	vars := map[string]any{
		"ground_force": stats.GroundForce,
		"air_force":    stats.AirForce,
		"max_speed":    stats.MaxSpeed,
		"jump_force":   stats.JumpForce,
		"elapsed":      w.Elapsed(),
		"message":      "",
	}
	for k, v := range vars {
		if err := compiled.Set(k, v); err != nil {
			return "", fmt.Errorf("level finish: set %s: %w", k, err)
		}
	}
	if err := compiled.Run(); err != nil {
		return "", fmt.Errorf("level finish: run %s: %w", name, err)
	}
	return compiled.Get("message").String(), nil
}

func (s *LevelFinishSystem) compile(name string) (*tengo.Compiled, error) {
	if c, ok := s.compiled[name]; ok {
		return c, nil
	}
	src, err := s.load(name)
	if err != nil {
		return nil, fmt.Errorf("level finish: load %s: %w", name, err)
	}

	script := tengo.NewScript(src)
	for _, k := range []string{"ground_force", "air_force", "max_speed", "jump_force", "elapsed"} {
		if err := script.Add(k, 0.0); err != nil {
			return nil, fmt.Errorf("level finish: declare %s: %w", k, err)
		}
	}
	if err := script.Add("message", ""); err != nil {
		return nil, fmt.Errorf("level finish: declare message: %w", err)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("level finish: compile %s: %w", name, err)
	}
	s.compiled[name] = compiled
	return compiled, nil
}

// Reset drops compiled scripts so the next completion reloads them.
func (s *LevelFinishSystem) Reset() {
	s.compiled = make(map[string]*tengo.Compiled)
}
