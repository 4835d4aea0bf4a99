package system

import (
	"log/slog"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/logger"
)

// InputSystem polls a source once per tick and writes the frame to every
// player. A die frame files a DeathRequest.
type InputSystem struct {
	Source input.Source
	clock  *Clock
	log    *slog.Logger
	failed bool
}

func NewInputSystem(source input.Source, clock *Clock, log *slog.Logger) *InputSystem {
	if log == nil {
		log = logger.L()
	}
	return &InputSystem{Source: source, clock: clock, log: log.With("system", "input")}
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil || s.Source == nil {
		return
	}

	frame, err := s.Source.Next(s.clock.tick())
	if err != nil {
		// once per failure streak
		if !s.failed {
			s.log.Warn("input source failed", "tick", s.clock.tick(), "err", err)
		}
		s.failed = true
		frame = input.Frame{}
	} else {
		s.failed = false
	}

	for _, e := range w.Query(component.InputComponent.Kind(), component.PlayerTagComponent.Kind()) {
		in, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}
		in.MoveX = frame.MoveX
		in.Jump = frame.Jump
		if frame.Die {
			request(w, e, component.DeathRequestComponent.Kind(), s.log)
		}
	}
}
