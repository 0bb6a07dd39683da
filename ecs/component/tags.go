package component

const (
	TagPlayer = "Player"
	TagSpawn  = "Spawn"
	TagCamera = "MainCamera"
)

// Tag names an entity for lookup.
type Tag struct {
	Name string
}

var TagComponent = NewComponent[Tag]()
