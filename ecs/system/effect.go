package system

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
	"github.com/milk9111/rollerball/session"
)

// EffectSpawner starts cosmetic effects. Callers never wait on them.
type EffectSpawner interface {
	SpawnCelebration(pos mgl64.Vec3)
	SpawnPickup(pos mgl64.Vec3, kind session.StatKind)
	SpawnCheckpoint(pos mgl64.Vec3)
}

// EffectsConfig holds the burst tuning per effect. Linger is how long an
// effect entity outlives its particle lifetime.
type EffectsConfig struct {
	Celebration component.EffectParams `yaml:"celebration"`
	Pickup      component.EffectParams `yaml:"pickup"`
	Checkpoint  component.EffectParams `yaml:"checkpoint"`
	Linger      float64                `yaml:"linger"`
}

func DefaultEffectsConfig() EffectsConfig {
	return EffectsConfig{
		Celebration: component.EffectParams{Count: 50, Lifetime: 2, Speed: 8, Radius: 1, Size: 0.35, Gravity: -5},
		Pickup:      component.EffectParams{Count: 20, Lifetime: 1.5, Speed: 2, Radius: 0.5, Size: 0.3, Upward: 5, Spiral: 3},
		Checkpoint:  component.EffectParams{Count: 15, Lifetime: 1, Speed: 3, Radius: 0.5, Size: 0.25, Upward: 2},
		Linger:      2,
	}
}

var (
	celebrationPalette = []color.RGBA{
		{255, 0, 0, 255},
		{255, 128, 0, 255},
		{255, 255, 0, 255},
		{0, 255, 0, 255},
		{0, 128, 255, 255},
		{128, 0, 255, 255},
		{255, 0, 128, 255},
	}
	speedPalette      = []color.RGBA{{77, 204, 255, 255}, {128, 255, 255, 255}}
	jumpPalette       = []color.RGBA{{255, 153, 51, 255}, {255, 204, 77, 255}}
	checkpointPalette = []color.RGBA{{90, 230, 120, 255}, {200, 255, 210, 255}}
)

type effectRequest struct {
	kind component.EffectKind
	pos  mgl64.Vec3
}

// EffectSystem queues spawn requests, turns them into Effect entities and
// animates their particles.
type EffectSystem struct {
	cfg     EffectsConfig
	pending []effectRequest
	seed    int64
	logger  zerolog.Logger
}

func NewEffectSystem(cfg EffectsConfig) *EffectSystem {
	return &EffectSystem{
		cfg:    cfg,
		seed:   1,
		logger: log.With().Str("system", "effect").Logger(),
	}
}

// SetConfig replaces the tuning used by future effects.
func (s *EffectSystem) SetConfig(cfg EffectsConfig) {
	s.cfg = cfg
}

func (s *EffectSystem) SpawnCelebration(pos mgl64.Vec3) {
	s.pending = append(s.pending, effectRequest{kind: component.EffectCelebration, pos: pos})
}

func (s *EffectSystem) SpawnPickup(pos mgl64.Vec3, kind session.StatKind) {
	ek := component.EffectPickupSpeed
	if kind == session.StatJump {
		ek = component.EffectPickupJump
	}
	s.pending = append(s.pending, effectRequest{kind: ek, pos: pos})
}

func (s *EffectSystem) SpawnCheckpoint(pos mgl64.Vec3) {
	s.pending = append(s.pending, effectRequest{kind: component.EffectCheckpoint, pos: pos})
}

func (s *EffectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, req := range s.pending {
		s.spawn(w, req)
	}
	s.pending = s.pending[:0]

	dt := w.DeltaTime()
	ecs.ForEach(w, component.EffectComponent.Kind(), func(e ecs.Entity, fx *component.Effect) {
		stepEffect(fx, dt)
	})
}

func (s *EffectSystem) spawn(w *ecs.World, req effectRequest) {
	params, palette, bursts := s.recipe(req.kind)
	fx := &component.Effect{
		Kind:    req.kind,
		Origin:  req.pos,
		Params:  params,
		Palette: palette,
		Seed:    s.seed,
		Bursts:  bursts,
	}
	s.seed++

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.EffectComponent.Kind(), fx); err != nil {
		s.logger.Error().Err(err).Msg("add effect")
		return
	}
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform(req.pos))
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: params.Lifetime + s.cfg.Linger})
	s.logger.Debug().Stringer("kind", req.kind).Floats64("position", req.pos[:]).Msg("effect spawned")
}

func (s *EffectSystem) recipe(kind component.EffectKind) (component.EffectParams, []color.RGBA, []component.Burst) {
	switch kind {
	case component.EffectCelebration:
		p := s.cfg.Celebration
		return p, celebrationPalette, []component.Burst{
			{At: 0, Count: p.Count},
			{At: 0.2, Count: p.Count / 2},
			{At: 0.4, Count: p.Count / 3},
		}
	case component.EffectPickupJump:
		return s.cfg.Pickup, jumpPalette, []component.Burst{{Count: s.cfg.Pickup.Count}}
	case component.EffectCheckpoint:
		return s.cfg.Checkpoint, checkpointPalette, []component.Burst{{Count: s.cfg.Checkpoint.Count}}
	default:
		return s.cfg.Pickup, speedPalette, []component.Burst{{Count: s.cfg.Pickup.Count}}
	}
}

func stepEffect(fx *component.Effect, dt float64) {
	fx.Age += dt

	for i := range fx.Bursts {
		b := &fx.Bursts[i]
		if b.Fired || fx.Age < b.At {
			continue
		}
		b.Fired = true
		emit(fx, b.Count, int64(i))
	}

	live := fx.Particles[:0]
	for _, p := range fx.Particles {
		p.Age += dt
		if p.Age >= p.Lifetime {
			continue
		}
		life := p.Age / p.Lifetime
		switch fx.Kind {
		case component.EffectCelebration:
			p.Velocity[1] += fx.Params.Gravity * dt
		default:
			// rise, slowing to 30% of the initial lift, while circling the origin
			p.Velocity[1] = fx.Params.Upward * (1 - 0.7*life)
			rel := p.Position.Sub(fx.Origin)
			tangent := mgl64.Vec3{-rel.Z(), 0, rel.X()}
			p.Velocity[0] = tangent.X() * fx.Params.Spiral
			p.Velocity[2] = tangent.Z() * fx.Params.Spiral
		}
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		live = append(live, p)
	}
	fx.Particles = live
}

// emit adds count particles spread over a sphere around the origin. The same
// seed and burst index always give the same particles.
func emit(fx *component.Effect, count int, burst int64) {
	rng := rand.New(rand.NewSource(fx.Seed*31 + burst))
	for i := 0; i < count; i++ {
		dir := randomUnit(rng)
		offset := dir.Mul(fx.Params.Radius * math.Cbrt(rng.Float64()))
		var c color.RGBA
		if len(fx.Palette) > 0 {
			c = fx.Palette[rng.Intn(len(fx.Palette))]
		}
		fx.Particles = append(fx.Particles, component.Particle{
			Position: fx.Origin.Add(offset),
			Velocity: dir.Mul(fx.Params.Speed),
			Lifetime: fx.Params.Lifetime,
			Size:     fx.Params.Size,
			Color:    c,
		})
	}
}

func randomUnit(rng *rand.Rand) mgl64.Vec3 {
	z := rng.Float64()*2 - 1
	a := rng.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	return mgl64.Vec3{r * math.Cos(a), z, r * math.Sin(a)}
}
