// Package scene assembles a playable session: the ECS world, the physics
// backend, the session manager and the systems that run each frame.
package scene

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
	"github.com/milk9111/rollerball/ecs/entity"
	"github.com/milk9111/rollerball/ecs/system"
	"github.com/milk9111/rollerball/levels"
	"github.com/milk9111/rollerball/physics"
	"github.com/milk9111/rollerball/prefabs"
	"github.com/milk9111/rollerball/session"
)

type Scene struct {
	World     *ecs.World
	Physics   *physics.World
	Session   *session.Manager
	Registry  *entity.Registry
	Level     *levels.Level
	Loaded    *entity.Loaded
	Scheduler *ecs.Scheduler

	input      *system.InputSystem
	physicsSys *system.PhysicsSystem
	controller *system.PlayerControllerSystem
	camera     *system.CameraSystem
	effects    *system.EffectSystem
	finish     *system.LevelFinishSystem

	logger   zerolog.Logger
	finished bool
	message  string
}

// New loads an embedded level by name.
func New(levelName string, input system.InputSource) (*Scene, error) {
	lvl, err := levels.LoadLevelFromFS(levelName)
	if err != nil {
		return nil, fmt.Errorf("scene: load level %s: %w", levelName, err)
	}
	return NewFromLevel(lvl, input)
}

func NewFromLevel(lvl *levels.Level, input system.InputSource) (*Scene, error) {
	game, err := prefabs.LoadGameSpec()
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if game.Session.Stats == (session.Stats{}) {
		game.Session.Stats = session.DefaultStats()
	}
	if game.Session.FallThreshold == 0 {
		game.Session.FallThreshold = session.DefaultFallThreshold
	}

	effectsCfg, err := prefabs.LoadSpec[system.EffectsConfig]("effects.yaml")
	if err != nil {
		log.Warn().Err(err).Msg("using default effects")
		effectsCfg = system.DefaultEffectsConfig()
	}

	s := &Scene{
		World:   ecs.NewWorld(),
		Physics: physics.NewWorld(physics.Config{Gravity: game.Gravity, LandingSlop: game.LandingSlop}),
		Level:   lvl,
		logger:  log.With().Str("scene", lvl.Name).Logger(),
	}

	if s.Loaded, err = entity.LoadLevelToWorld(s.World, lvl); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	s.Registry = entity.NewRegistry(s.World)
	s.Session = session.New(game.Session, s.Registry)
	if err := s.Session.Start(); err != nil && !errors.Is(err, session.ErrNoSpawnMarker) {
		return nil, fmt.Errorf("scene: start session: %w", err)
	}

	s.input = system.NewInputSystem(input)
	s.physicsSys = system.NewPhysicsSystem(s.Physics, game.FixedDT, game.MaxSubsteps)
	s.controller = system.NewPlayerControllerSystem(s.Session, s.Physics)
	s.physicsSys.AddFixed(s.controller)
	s.camera = system.NewCameraSystem()
	s.effects = system.NewEffectSystem(effectsCfg)
	s.finish = system.NewLevelFinishSystem(prefabs.LoadScript, s.Session, s.effects)
	s.finish.OnFinish(func(msg string) {
		s.finished = true
		s.message = msg
	})

	s.Scheduler = ecs.NewScheduler(
		s.physicsSys,
		s.input,
		s.controller,
		system.NewCheckpointSystem(s.Session, s.effects),
		system.NewPickupCollectSystem(s.Session, s.effects),
		s.finish,
		s.camera,
		s.effects,
		system.NewTTLSystem(),
	)

	s.logger.Info().Msg("scene ready")
	return s, nil
}

// Update runs one frame of dt seconds.
func (s *Scene) Update(dt float64) {
	s.Scheduler.Update(s.World, dt)
}

func (s *Scene) SetInput(src system.InputSource) {
	s.input.SetSource(src)
}

// Finished reports whether the player reached a finish and the message the
// finish script produced.
func (s *Scene) Finished() (string, bool) {
	return s.message, s.finished
}

func (s *Scene) Stats() session.Stats {
	return s.Session.Stats()
}

// Restart puts the player back at the latest respawn point.
func (s *Scene) Restart() bool {
	return s.Session.RespawnPlayer()
}

// ApplyChange re-reads a tuning file that changed on disk. Only player,
// camera and effect tuning apply live; other specs are read on the next load.
func (s *Scene) ApplyChange(change prefabs.Change) error {
	if change.Kind == prefabs.ChangeScript {
		s.finish.Reset()
		s.logger.Info().Str("script", change.Name).Msg("finish scripts reloaded")
		return nil
	}

	switch change.Name {
	case "player.yaml":
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return err
		}
		mask, err := spec.GroundMask()
		if err != nil {
			s.logger.Warn().Err(err).Msg("ignoring unknown ground layers")
		}
		ecs.ForEach(s.World, component.PlayerControllerComponent.Kind(), func(e ecs.Entity, pc *component.PlayerController) {
			pc.GroundCheckDistance = spec.GroundCheckDistance
			pc.GroundLayer = mask
			pc.GroundDrag = spec.GroundDrag
			pc.AirDrag = spec.AirDrag
		})
	case "camera.yaml":
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			return err
		}
		ecs.ForEach(s.World, component.CameraComponent.Kind(), func(e ecs.Entity, c *component.Camera) {
			c.Distance = spec.Distance
			c.Height = spec.Height
			c.SmoothSpeed = spec.SmoothSpeed
			c.LookAt = spec.LookAt
			c.RotationSpeed = spec.RotationSpeed
			c.RotationSmoothSpeed = spec.RotationSmoothSpeed
			if spec.FOV > 0 {
				c.FOV = spec.FOV
			}
		})
	case "effects.yaml":
		cfg, err := prefabs.LoadSpec[system.EffectsConfig]("effects.yaml")
		if err != nil {
			return err
		}
		s.effects.SetConfig(cfg)
	default:
		s.logger.Debug().Str("file", change.Name).Msg("change applies on next load")
		return nil
	}
	s.logger.Info().Str("file", change.Name).Msg("tuning reloaded")
	return nil
}
