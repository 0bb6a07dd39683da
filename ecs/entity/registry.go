package entity

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
	"github.com/milk9111/rollerball/physics"
)

// Registry finds the player and the spawn marker by tag. A found entity is
// cached until it dies, so lookups after the first are constant time.
type Registry struct {
	world *ecs.World
	log   zerolog.Logger

	player    ecs.Entity
	hasPlayer bool
	spawn     ecs.Entity
	hasSpawn  bool
}

func NewRegistry(w *ecs.World) *Registry {
	return &Registry{
		world: w,
		log:   log.With().Str("component", "registry").Logger(),
	}
}

// Player returns the player's physics body. It reports false until the
// physics system has attached one.
func (r *Registry) Player() (physics.Body, bool) {
	e, ok := r.resolve(&r.player, &r.hasPlayer, component.TagPlayer)
	if !ok {
		return nil, false
	}
	rb, ok := ecs.Get(r.world, e, component.RigidBodyComponent.Kind())
	if !ok || rb.Body == nil {
		return nil, false
	}
	return rb.Body, true
}

// PlayerEntity returns the cached player entity.
func (r *Registry) PlayerEntity() (ecs.Entity, bool) {
	return r.resolve(&r.player, &r.hasPlayer, component.TagPlayer)
}

func (r *Registry) SpawnMarker() (mgl64.Vec3, mgl64.Quat, bool) {
	e, ok := r.resolve(&r.spawn, &r.hasSpawn, component.TagSpawn)
	if !ok {
		return mgl64.Vec3{}, mgl64.QuatIdent(), false
	}
	tr, ok := ecs.Get(r.world, e, component.TransformComponent.Kind())
	if !ok {
		return mgl64.Vec3{}, mgl64.QuatIdent(), false
	}
	return tr.Position, tr.Rotation, true
}

func (r *Registry) resolve(cached *ecs.Entity, has *bool, tag string) (ecs.Entity, bool) {
	if r == nil || r.world == nil {
		return 0, false
	}
	if *has && ecs.IsAlive(r.world, *cached) {
		return *cached, true
	}
	*has = false

	var found ecs.Entity
	ok := false
	ecs.ForEach(r.world, component.TagComponent.Kind(), func(e ecs.Entity, t *component.Tag) {
		if ok || t == nil || t.Name != tag {
			return
		}
		found = e
		ok = true
	})
	if !ok {
		return 0, false
	}
	r.log.Debug().Str("tag", tag).Uint64("entity", uint64(found)).Msg("resolved")
	*cached = found
	*has = true
	return found, true
}
