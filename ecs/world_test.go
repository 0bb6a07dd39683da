package ecs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/rollerball/ecs/component"
)

func TestEntitiesTracksLiveHandles(t *testing.T) {
	tests := []struct {
		name    string
		create  int
		destroy []int
		want    int
	}{
		{name: "fresh world", create: 0, want: 0},
		{name: "player and camera", create: 2, want: 2},
		{name: "pickup collected", create: 3, destroy: []int{1}, want: 2},
		{name: "double destroy", create: 2, destroy: []int{0, 0}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, tt.create)
			for i := 0; i < tt.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			for _, i := range tt.destroy {
				DestroyEntity(w, ents[i])
			}
			assert.Len(t, Entities(w), tt.want)
			for _, i := range tt.destroy {
				assert.False(t, IsAlive(w, ents[i]))
			}
		})
	}
}

func levelFixture(t *testing.T) (w *World, player, camera, pickup Entity) {
	t.Helper()
	w = NewWorld()
	player = CreateEntity(w)
	camera = CreateEntity(w)
	pickup = CreateEntity(w)

	require.NoError(t, Add(w, player, component.TransformComponent.Kind(), component.NewTransform(mgl64.Vec3{0, 0.5, 0})))
	require.NoError(t, Add(w, player, component.TagComponent.Kind(), &component.Tag{Name: component.TagPlayer}))
	require.NoError(t, Add(w, player, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, Add(w, camera, component.TransformComponent.Kind(), component.NewTransform(mgl64.Vec3{0, 5, 10})))
	require.NoError(t, Add(w, camera, component.TagComponent.Kind(), &component.Tag{Name: component.TagCamera}))
	require.NoError(t, Add(w, camera, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, Add(w, pickup, component.TransformComponent.Kind(), component.NewTransform(mgl64.Vec3{0, 1, -3})))
	require.NoError(t, Add(w, pickup, component.PowerupComponent.Kind(), &component.Powerup{Amount: 5}))
	return w, player, camera, pickup
}

func TestQueryIntersectsStores(t *testing.T) {
	w, player, camera, pickup := levelFixture(t)
	transform := component.TransformComponent.Kind()
	tags := component.TagComponent.Kind()
	powerups := component.PowerupComponent.Kind()
	inputs := component.InputComponent.Kind()

	tests := []struct {
		name  string
		kinds []component.Kind
		want  []Entity
	}{
		{name: "transforms", kinds: []component.Kind{transform}, want: []Entity{player, camera, pickup}},
		{name: "tagged with input", kinds: []component.Kind{tags, inputs}, want: []Entity{player, camera}},
		{name: "powerup", kinds: []component.Kind{transform, powerups}, want: []Entity{pickup}},
		{name: "no common entity", kinds: []component.Kind{tags, powerups}, want: nil},
		{name: "no kinds", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, w.Query(tt.kinds...))
		})
	}
}

func TestQuerySkipsDestroyedEntities(t *testing.T) {
	w, player, camera, pickup := levelFixture(t)
	require.True(t, DestroyEntity(w, pickup))

	assert.Empty(t, w.Query(component.PowerupComponent.Kind()))
	_, ok := w.First(component.PowerupComponent.Kind())
	assert.False(t, ok)
	assert.ElementsMatch(t, []Entity{player, camera}, w.Query(component.TransformComponent.Kind()))

	tr, ok := Get(w, player, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{0, 0.5, 0}, tr.Position)
}

func TestRemoveKeepsOtherComponents(t *testing.T) {
	w, _, _, pickup := levelFixture(t)

	assert.True(t, Remove(w, pickup, component.PowerupComponent.Kind()))
	assert.False(t, Remove(w, pickup, component.PowerupComponent.Kind()))
	assert.False(t, Has(w, pickup, component.PowerupComponent.Kind()))
	assert.True(t, Has(w, pickup, component.TransformComponent.Kind()))
	assert.True(t, IsAlive(w, pickup))
}

func TestForEach2VisitsSharedEntities(t *testing.T) {
	w, player, camera, _ := levelFixture(t)

	seen := map[Entity]string{}
	ForEach2(w, component.TagComponent.Kind(), component.InputComponent.Kind(), func(e Entity, tag *component.Tag, _ *component.Input) {
		seen[e] = tag.Name
	})

	assert.Equal(t, map[Entity]string{player: component.TagPlayer, camera: component.TagCamera}, seen)
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestEntityGenerationReuse(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatal(err)
	}
	if !DestroyEntity(w, old) {
		t.Fatal("destroy failed")
	}

	reused := CreateEntity(w)
	if reused.id() != old.id() {
		t.Fatalf("expected id reuse, got %d want %d", reused.id(), old.id())
	}
	if reused == old {
		t.Fatal("reused entity must carry a new generation")
	}
	if Has(w, reused, h.Kind()) {
		t.Fatal("components must not leak into a reused slot")
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestQueryAndFirst(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	_ = Add(w, e1, ka, intPtr(1))
	_ = Add(w, e2, ka, intPtr(2))
	_ = Add(w, e2, kb, stringPtr("b"))

	got := w.Query(ka, kb)
	if len(got) != 1 || got[0] != e2 {
		t.Fatalf("expected [e2], got %v", got)
	}

	if e, ok := w.First(kb); !ok || e != e2 {
		t.Fatalf("expected First(kb)=e2, got %v ok=%v", e, ok)
	}

	DestroyEntity(w, e1)
	if e, ok := First(w, ka); !ok || e != e2 {
		t.Fatalf("expected First(ka)=e2 after destroying e1, got %v ok=%v", e, ok)
	}

	if got := w.Query(component.NewComponentKind[float64]()); got != nil {
		t.Fatalf("expected nil query for unknown store, got %v", got)
	}
}

func TestAddRejectsNil(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	k := component.NewComponentKind[int]()
	if err := Add[int](w, e, k, nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
}

type recordSystem struct {
	name  string
	order *[]string
}

func (r recordSystem) Update(w *World) {
	*r.order = append(*r.order, r.name)
	w.Events().Push(Event{Type: EventTrigger, Data: TriggerEvent{Kind: TriggerEnter}})
}

func TestSchedulerRunsInOrderAndFlushesEvents(t *testing.T) {
	w := NewWorld()
	var order []string
	var seen int
	s := NewScheduler(recordSystem{"a", &order}, recordSystem{"b", &order})
	s.Add(systemFunc(func(w *World) { seen = len(TriggerEvents(w, TriggerEnter)) }))

	s.Update(w, 0.5)
	s.Update(w, 0.25)

	if len(order) != 4 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("unexpected order %v", order)
	}
	if seen != 2 {
		t.Fatalf("expected later systems to see both events of the frame, saw %d", seen)
	}
	if len(w.Events().Peek()) != 0 {
		t.Fatal("events must be flushed at end of frame")
	}
	if w.Frame() != 2 || w.Elapsed() != 0.75 {
		t.Fatalf("unexpected clock frame=%d elapsed=%v", w.Frame(), w.Elapsed())
	}
}

type systemFunc func(w *World)

func (f systemFunc) Update(w *World) { f(w) }
