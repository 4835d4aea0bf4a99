package component

import "github.com/go-gl/mathgl/mgl64"

// SafeRespawn stores where a player comes back after a respawn. With
// KillPlane set, a player whose position drops below KillY is respawned.
type SafeRespawn struct {
	Position  mgl64.Vec3
	KillPlane bool
	KillY     float64
}

var SafeRespawnComponent = NewComponent[SafeRespawn]()
