package system

import (
	"log/slog"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/event"
	"github.com/milk9111/platformer/logger"
)

const alphaEpsilon = 1e-3

// DisappearingPlatformSystem fades platforms out once a player has stood on
// them long enough and, when configured, fades them back in.
type DisappearingPlatformSystem struct {
	geometry Geometry
	bus      *event.Bus
	clock    *Clock
	log      *slog.Logger
}

func NewDisappearingPlatformSystem(geometry Geometry, bus *event.Bus, clock *Clock, log *slog.Logger) *DisappearingPlatformSystem {
	if log == nil {
		log = logger.L()
	}
	return &DisappearingPlatformSystem{geometry: geometry, bus: bus, clock: clock, log: log.With("system", "disappearing_platform")}
}

func (s *DisappearingPlatformSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := s.clock.dt()
	if dt <= 0 {
		return
	}

	ecs.ForEach(w, component.DisappearingPlatformComponent.Kind(), func(e ecs.Entity, d *component.DisappearingPlatform) {
		on := d.Solid && standingOn(w, e)
		step(d, on, dt)

		solid := d.Alpha > alphaEpsilon
		if solid == d.Solid {
			return
		}
		d.Solid = solid
		if s.geometry != nil {
			if err := s.geometry.SetEnabled(e.ColliderID(), solid); err != nil {
				s.log.Warn("toggle platform geometry", "platform", objectName(w, e), "err", err)
			}
		}

		topic := event.EventPlatformVanished
		if solid {
			topic = event.EventPlatformRestored
		}
		s.log.Debug("platform toggled", "platform", objectName(w, e), "solid", solid, "tick", s.clock.tick())
		w.Events().Push(ecs.Event{Type: topic, Entity: e})
		publish(s.bus, topic, event.PlatformToggled{Tick: s.clock.tick(), Platform: e.ColliderID(), Name: objectName(w, e)})
	})
}

func step(d *component.DisappearingPlatform, on bool, dt float64) {
	switch {
	case on && !d.Disappearing && !d.Waiting:
		d.Waiting = true
		d.Wait = 0
	case !on && d.Waiting:
		d.Waiting = false
		d.Wait = 0
	}

	if d.Waiting {
		d.Wait += dt
		if d.Wait >= d.DisappearAfter {
			d.Waiting = false
			d.Disappearing = true
		}
	}

	if d.Disappearing {
		d.Delay = 0
		d.Alpha -= d.DisappearRate * dt
		if d.Alpha <= 0 {
			d.Alpha = 0
			d.Disappearing = false
		}
		return
	}

	if on || !d.Reappear || d.Alpha >= 1 {
		d.Delay = 0
		return
	}
	d.Delay += dt
	if d.Delay < d.ReappearDelay {
		return
	}
	d.Alpha += d.ReappearRate * dt
	if d.Alpha >= 1 {
		d.Alpha = 1
		d.Delay = 0
	}
}
