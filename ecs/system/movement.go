package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/locomotion"
)

// MovementSystem runs each player's movement controller and writes the
// command to its physics body.
type MovementSystem struct {
	basis locomotion.Basis
	clock *Clock
}

func NewMovementSystem(clock *Clock) *MovementSystem {
	return &MovementSystem{basis: locomotion.DefaultBasis(), clock: clock}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.LocomotionComponent.Kind(), component.InputComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion, in *component.Input, pb *component.PhysicsBody) {
		if loco.Controller == nil || pb.Body == nil {
			return
		}
		v := pb.Body.Velocity()
		up := s.basis.Up.Mul(v.Dot(s.basis.Up))

		cmd := loco.Controller.Step(locomotion.StepInput{
			State:            loco.State,
			Horizontal:       in.MoveX,
			Jump:             in.Jump,
			Previous:         v.Sub(up),
			VerticalVelocity: v.Dot(s.basis.Up),
			Forward:          s.basis.Forward,
			Up:               s.basis.Up,
			DT:               s.clock.dt(),
		})
		locomotion.Apply(pb.Body, s.basis, cmd)
		loco.Last = cmd
		loco.Facing = cmd.Facing

		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.Yaw = cmd.Facing.Yaw()
		}
	})
}
