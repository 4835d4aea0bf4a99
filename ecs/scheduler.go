package ecs

// System is one stage of a tick.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order. Events pushed during a tick
// are visible to later systems in the same tick and are handed back to the
// caller when the tick ends.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs one tick and returns the events it produced.
func (s *Scheduler) Update(w *World) []Event {
	for _, system := range s.systems {
		system.Update(w)
	}
	return w.Events().Drain()
}

func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}
