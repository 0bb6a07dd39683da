package component

import "github.com/milk9111/rollerball/session"

// Checkpoint moves the respawn point the first time the player touches it.
type Checkpoint struct {
	Name      string
	Activated bool
}

var CheckpointComponent = NewComponent[Checkpoint]()

// Powerup raises a session stat when collected.
type Powerup struct {
	Stat   session.StatKind
	Amount float64
}

var PowerupComponent = NewComponent[Powerup]()

// LevelFinish ends the level when the player reaches it.
type LevelFinish struct {
	// Script is the name of a finish script, empty for none.
	Script    string
	Completed bool
	Message   string
}

var LevelFinishComponent = NewComponent[LevelFinish]()
