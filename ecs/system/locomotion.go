package system

import (
	"log/slog"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/locomotion"
	"github.com/milk9111/platformer/logger"
)

// LocomotionSystem advances each player's state machine from its probe
// result. Death requests are applied before the machine advances.
type LocomotionSystem struct {
	// Sink is subscribed to every machine the system sees, once.
	Sink locomotion.Sink

	clock *Clock
	log   *slog.Logger
}

func NewLocomotionSystem(sink locomotion.Sink, clock *Clock, log *slog.Logger) *LocomotionSystem {
	if log == nil {
		log = logger.L()
	}
	return &LocomotionSystem{
		Sink:  sink,
		clock: clock,
		log:   log.With("system", "locomotion"),
	}
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.LocomotionComponent.Kind(), component.ProbeComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion, probe *component.Probe) {
		if loco.Machine == nil {
			return
		}
		if s.Sink != nil && loco.Subscribed != loco.Machine {
			loco.Machine.Subscribe(s.Sink)
			loco.Subscribed = loco.Machine
		}

		if ecs.Remove(w, e, component.DeathRequestComponent.Kind()) {
			loco.Machine.SignalDeath()
		}

		tr := loco.Machine.Advance(probe.Result)
		loco.State = tr.To
		if !tr.Changed {
			return
		}
		loco.Transitions++
		s.log.Debug("state changed", "entity", e, "tick", s.clock.tick(), "from", tr.From, "to", tr.To)
		w.Events().Push(ecs.Event{Type: locomotion.TopicStateChanged, Entity: e, Data: tr})
	})
}
