package system

import (
	"context"
	"log/slog"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/logger"
)

// EffectsSystem advances decorative water surfaces and fish schools. Each
// runs fork-join across Workers goroutines; zero means one per CPU.
type EffectsSystem struct {
	Workers int
	ctx     context.Context
	clock   *Clock
	log     *slog.Logger
}

func NewEffectsSystem(ctx context.Context, workers int, clock *Clock, log *slog.Logger) *EffectsSystem {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = logger.L()
	}
	return &EffectsSystem{Workers: workers, ctx: ctx, clock: clock, log: log.With("system", "effects")}
}

func (s *EffectsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := s.clock.dt()
	if dt <= 0 {
		return
	}

	ecs.ForEach(w, component.WaterComponent.Kind(), func(e ecs.Entity, water *component.Water) {
		water.Time += dt
		if err := water.Wave.Update(s.ctx, water.Time, s.Workers); err != nil {
			s.log.Warn("wave update", "entity", e, "err", err)
		}
		if err := water.School.Update(s.ctx, dt, s.Workers); err != nil {
			s.log.Warn("school update", "entity", e, "err", err)
		}
	})
}
