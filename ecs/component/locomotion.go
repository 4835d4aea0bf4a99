package component

import "github.com/milk9111/platformer/locomotion"

// Locomotion holds the player's state machine and movement controller. State
// and Facing mirror the machine and controller after each tick for readers
// that should not touch either.
type Locomotion struct {
	Machine     *locomotion.StateMachine
	Controller  *locomotion.MovementController
	State       locomotion.State
	Facing      locomotion.Facing
	Transitions int
	Last        locomotion.Command
	// Subscribed is the machine the locomotion system last attached its sink to.
	Subscribed *locomotion.StateMachine
}

var LocomotionComponent = NewComponent[Locomotion]()
