package component

// RespawnRequest is a marker asking for the player to be moved back to its
// SafeRespawn position. The respawn system runs after physics and handles it.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
