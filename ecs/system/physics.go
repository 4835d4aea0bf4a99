package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

// PhysicsSystem steps the space and copies body positions back to transforms.
type PhysicsSystem struct {
	space *physics.Space
	clock *Clock
}

func NewPhysicsSystem(space *physics.Space, clock *Clock) *PhysicsSystem {
	return &PhysicsSystem{space: space, clock: clock}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil || s.space == nil {
		return
	}

	s.space.Step(s.clock.dt())

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil {
			return
		}
		t.Position = pb.Body.Position()
	})
}
