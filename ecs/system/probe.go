package system

import (
	"log/slog"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/locomotion"
	"github.com/milk9111/platformer/logger"
)

// ProbeSystem senses the surroundings of every player. Probes are created
// on first use against the system's ray caster.
type ProbeSystem struct {
	caster locomotion.RayCaster
	basis  locomotion.Basis
	log    *slog.Logger
}

func NewProbeSystem(caster locomotion.RayCaster, log *slog.Logger) *ProbeSystem {
	if log == nil {
		log = logger.L()
	}
	return &ProbeSystem{caster: caster, basis: locomotion.DefaultBasis(), log: log.With("system", "probe")}
}

func (s *ProbeSystem) Update(w *ecs.World) {
	if w == nil || s.caster == nil {
		return
	}

	ecs.ForEach3(w, component.ProbeComponent.Kind(), component.PlayerComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, p *component.Probe, player *component.Player, col *component.Collider) {
		if p.Probe == nil {
			probe, err := locomotion.NewEnvironmentProbe(s.caster, player.Tuning.FallingThreshold)
			if err != nil {
				s.log.Error("create probe", "entity", e, "err", err)
				return
			}
			p.Probe = probe
		} else {
			p.Probe.SetFallingThreshold(player.Tuning.FallingThreshold)
		}

		var bounds locomotion.Bounds
		var vy float64
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
			bounds = locomotion.Bounds{Center: body.Body.Position(), Extents: col.Extents}
			vy = body.Body.Velocity().Y()
		} else if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			bounds = locomotion.Bounds{Center: t.Position, Extents: col.Extents}
		} else {
			return
		}

		p.Result = p.Probe.Sense(bounds, s.basis, player.Tuning.ProbeRange, vy)
	})
}
