package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is an entity's world position. Yaw is the rotation about +Y in radians.
type Transform struct {
	Position mgl64.Vec3
	Yaw      float64
}

var TransformComponent = NewComponent[Transform]()
