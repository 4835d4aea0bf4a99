package component

// DeathRequest is a one-shot request to kill the player. The locomotion
// system consumes it.
type DeathRequest struct{}

var DeathRequestComponent = NewComponent[DeathRequest]()
