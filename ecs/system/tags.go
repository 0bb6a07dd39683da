package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/rollerball/ecs"
	"github.com/milk9111/rollerball/ecs/component"
)

func findTagged(w *ecs.World, name string) (ecs.Entity, bool) {
	var found ecs.Entity
	ok := false
	ecs.ForEach(w, component.TagComponent.Kind(), func(e ecs.Entity, tag *component.Tag) {
		if ok || tag == nil || tag.Name != name {
			return
		}
		found = e
		ok = true
	})
	return found, ok
}

func hasTag(w *ecs.World, e ecs.Entity, name string) bool {
	tag, ok := ecs.Get(w, e, component.TagComponent.Kind())
	return ok && tag.Name == name
}

// positionOf prefers the live body pose over the last synced transform.
func positionOf(w *ecs.World, e ecs.Entity) (mgl64.Vec3, bool) {
	if rb, found := ecs.Get(w, e, component.RigidBodyComponent.Kind()); found && rb.Body != nil {
		return rb.Body.Position(), true
	}
	if t, found := ecs.Get(w, e, component.TransformComponent.Kind()); found {
		return t.Position, true
	}
	return mgl64.Vec3{}, false
}
