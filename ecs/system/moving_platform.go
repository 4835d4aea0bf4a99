package system

import (
	"log/slog"
	"math"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/event"
	"github.com/milk9111/platformer/logger"
)

const EventDestinationReached = event.EventDestinationReached

// MovingPlatformSystem eases platforms back and forth between their targets.
// Probe geometry moves immediately; kinematic bodies are given the velocity
// that reaches the same spot on the next physics step.
type MovingPlatformSystem struct {
	geometry Geometry
	bus      *event.Bus
	clock    *Clock
	log      *slog.Logger
}

func NewMovingPlatformSystem(geometry Geometry, bus *event.Bus, clock *Clock, log *slog.Logger) *MovingPlatformSystem {
	if log == nil {
		log = logger.L()
	}
	return &MovingPlatformSystem{geometry: geometry, bus: bus, clock: clock, log: log.With("system", "moving_platform")}
}

func (s *MovingPlatformSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := s.clock.dt()
	if dt <= 0 {
		return
	}

	ecs.ForEach2(w, component.MovingPlatformComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, mp *component.MovingPlatform, t *component.Transform) {
		mp.Time += dt * mp.Speed
		target := common.LerpVec3(mp.Right, mp.Left, common.EaseInOutCos(common.PingPong(mp.Time, 1)))

		heading := 1
		if int(math.Floor(mp.Time))%2 == 1 {
			heading = -1
		}
		if heading != mp.Heading {
			mp.Heading = heading
			name := objectName(w, e)
			s.log.Debug("platform reached destination", "platform", name, "tick", s.clock.tick())
			w.Events().Push(ecs.Event{Type: EventDestinationReached, Entity: e})
			publish(s.bus, EventDestinationReached, event.DestinationReached{
				Tick:     s.clock.tick(),
				Platform: e.ColliderID(),
				Name:     name,
			})
		}

		mp.Delta = target.Sub(t.Position)
		t.Position = target

		if s.geometry != nil {
			if err := s.geometry.Move(e.ColliderID(), target); err != nil {
				s.log.Warn("move platform geometry", "platform", objectName(w, e), "err", err)
			}
		}
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Kinematic {
			body.Body.MoveKinematic(target, dt)
		}
	})
}
