package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// AnchorSystem carries players standing on anchor platforms by the distance
// the platform moved this tick.
type AnchorSystem struct{}

func NewAnchorSystem() *AnchorSystem { return &AnchorSystem{} }

func (s *AnchorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.ProbeComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, p *component.Probe, pb *component.PhysicsBody) {
		if !p.Result.Grounded || pb.Body == nil || pb.Kinematic {
			return
		}
		platform := ecs.EntityForCollider(p.Result.Ground)
		if !ecs.Has(w, platform, component.AnchorComponent.Kind()) {
			return
		}
		mp, ok := ecs.Get(w, platform, component.MovingPlatformComponent.Kind())
		if !ok || mp.Delta.Len() == 0 {
			return
		}
		pb.Body.Translate(mp.Delta)
	})
}
