// Package session holds the per-run game state: movement stats and the
// respawn point. A Manager is created by the scene and passed to the systems
// that need it.
package session

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/rollerball/physics"
)

var (
	ErrNoSpawnMarker = errors.New("session: no spawn marker")
	ErrNoPlayer      = errors.New("session: no player")
)

// DefaultFallThreshold is the height below which the player is respawned.
const DefaultFallThreshold = -10

// Config seeds a Manager.
type Config struct {
	Stats         Stats   `yaml:"stats"`
	FallThreshold float64 `yaml:"fall_threshold"`
}

// DefaultConfig returns the stock session tuning.
func DefaultConfig() Config {
	return Config{
		Stats:         DefaultStats(),
		FallThreshold: DefaultFallThreshold,
	}
}

// Registry finds the scene objects a Manager acts on.
type Registry interface {
	Player() (physics.Body, bool)
	SpawnMarker() (mgl64.Vec3, mgl64.Quat, bool)
}

// Manager owns the stats and the respawn point for one session.
type Manager struct {
	cfg      Config
	registry Registry
	logger   zerolog.Logger

	stats       Stats
	respawn     RespawnPoint
	respawns    int
	subscribers []func(Stats)
}

// New creates a Manager with initialized stats and the respawn point at the
// origin. Call Start (or InitializeSpawn) once the scene exists.
func New(cfg Config, registry Registry) *Manager {
	m := &Manager{
		cfg:      cfg,
		registry: registry,
		logger:   log.With().Str("component", "session").Logger(),
		respawn:  RespawnPoint{Rotation: mgl64.QuatIdent()},
	}
	m.stats = cfg.Stats
	return m
}

// SetLogger replaces the manager's logger.
func (m *Manager) SetLogger(l zerolog.Logger) {
	m.logger = l
}

// Start initializes stats and the respawn point. A missing spawn marker is
// reported but leaves the manager usable.
func (m *Manager) Start() error {
	m.InitializeStats()
	return m.InitializeSpawn()
}

// InitializeStats resets the stats to their configured starting values.
func (m *Manager) InitializeStats() {
	m.stats = m.cfg.Stats
	m.logger.Debug().
		Float64("ground_force", m.stats.GroundForce).
		Float64("air_force", m.stats.AirForce).
		Float64("max_speed", m.stats.MaxSpeed).
		Float64("jump_force", m.stats.JumpForce).
		Msg("stats initialized")
	m.sync()
}

// InitializeSpawn places the respawn point at the spawn marker. Without a
// marker it falls back to the origin with identity rotation.
func (m *Manager) InitializeSpawn() error {
	var (
		pos mgl64.Vec3
		rot mgl64.Quat
		ok  bool
	)
	if m.registry != nil {
		pos, rot, ok = m.registry.SpawnMarker()
	}
	if !ok {
		m.respawn = RespawnPoint{Rotation: mgl64.QuatIdent()}
		m.logger.Error().Err(ErrNoSpawnMarker).Msg("using origin as respawn point")
		return ErrNoSpawnMarker
	}
	m.respawn = RespawnPoint{Position: pos, Rotation: orIdentity(rot)}
	m.logger.Info().Floats64("position", pos[:]).Msg("respawn point set from spawn marker")
	return nil
}

// SetCheckpoint overwrites the respawn point.
func (m *Manager) SetCheckpoint(pos mgl64.Vec3, rot mgl64.Quat) {
	m.respawn = RespawnPoint{Position: pos, Rotation: orIdentity(rot)}
	m.logger.Info().Floats64("position", pos[:]).Msg("checkpoint reached")
}

// RespawnPlayer moves the player body to the respawn point and stops it.
// It reports false when no player exists.
func (m *Manager) RespawnPlayer() bool {
	var (
		body physics.Body
		ok   bool
	)
	if m.registry != nil {
		body, ok = m.registry.Player()
	}
	if !ok || body == nil {
		m.logger.Error().Err(ErrNoPlayer).Msg("cannot respawn")
		return false
	}
	body.SetPosition(m.respawn.Position)
	body.SetRotation(m.respawn.Rotation)
	body.SetVelocity(mgl64.Vec3{})
	body.SetAngularVelocity(mgl64.Vec3{})
	m.respawns++
	m.logger.Info().Floats64("position", m.respawn.Position[:]).Msg("player respawned")
	return true
}

// IncreaseStat applies a powerup. Speed raises the ground force by amount and
// the speed cap by half of it; jump raises the jump force.
func (m *Manager) IncreaseStat(kind StatKind, amount float64) {
	switch kind {
	case StatSpeed:
		m.stats.GroundForce += amount
		m.stats.MaxSpeed += amount / 2
	case StatJump:
		m.stats.JumpForce += amount
	default:
		m.logger.Warn().Stringer("kind", kind).Msg("unknown stat")
		return
	}
	m.logger.Info().
		Stringer("kind", kind).
		Float64("amount", amount).
		Float64("ground_force", m.stats.GroundForce).
		Float64("max_speed", m.stats.MaxSpeed).
		Float64("jump_force", m.stats.JumpForce).
		Msg("stat increased")
	m.sync()
}

func (m *Manager) IncreaseSpeed(amount float64) { m.IncreaseStat(StatSpeed, amount) }
func (m *Manager) IncreaseJump(amount float64)  { m.IncreaseStat(StatJump, amount) }

// Subscribe registers fn to receive the stats now and after every change.
func (m *Manager) Subscribe(fn func(Stats)) {
	if fn == nil {
		return
	}
	m.subscribers = append(m.subscribers, fn)
	fn(m.stats)
}

func (m *Manager) Stats() Stats               { return m.stats }
func (m *Manager) RespawnPoint() RespawnPoint { return m.respawn }
func (m *Manager) FallThreshold() float64     { return m.cfg.FallThreshold }

// Respawns counts successful RespawnPlayer calls.
func (m *Manager) Respawns() int { return m.respawns }

func (m *Manager) sync() {
	for _, fn := range m.subscribers {
		fn(m.stats)
	}
}

// orIdentity keeps q as given; only the zero quaternion maps to identity.
func orIdentity(q mgl64.Quat) mgl64.Quat {
	if q.W == 0 && q.V == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}
	return q
}
