package component

import "github.com/go-gl/mathgl/mgl64"

// Collider is an axis-aligned box centred on the transform. Extents are half sizes.
type Collider struct {
	Extents mgl64.Vec3
}

var ColliderComponent = NewComponent[Collider]()
