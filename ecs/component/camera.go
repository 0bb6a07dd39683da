package component

// Camera is a third-person orbit rig.
type Camera struct {
	// Target is the tag of the entity to follow.
	Target              string
	Distance            float64
	Height              float64
	SmoothSpeed         float64
	LookAt              bool
	RotationSpeed       float64
	RotationSmoothSpeed float64

	// Angle is the orbit angle in degrees. It is never wrapped.
	Angle float64
	FOV   float64
}

var CameraComponent = NewComponent[Camera]()
