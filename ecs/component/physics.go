package component

import "github.com/milk9111/platformer/physics"

// PhysicsBody links an entity to its Chipmunk body. Static geometry has no
// body and is addressed by entity id instead.
type PhysicsBody struct {
	Body      *physics.Body
	Kinematic bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
