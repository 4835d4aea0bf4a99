package system

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/logger"
)

type RespawnSystem struct {
	clock *Clock
	log   *slog.Logger
}

func NewRespawnSystem(clock *Clock, log *slog.Logger) *RespawnSystem {
	if log == nil {
		log = logger.L()
	}
	return &RespawnSystem{clock: clock, log: log.With("system", "respawn")}
}

// Update files a request for players below their kill height, then performs
// every pending request. It should run after the PhysicsSystem so the
// transform reflects this tick's position.
func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.SafeRespawnComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, safe *component.SafeRespawn, t *component.Transform) {
		if safe.KillPlane && t.Position.Y() < safe.KillY {
			request(w, e, component.RespawnRequestComponent.Kind(), s.log)
		}
	})

	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, _ *component.RespawnRequest) {
		s.Respawn(w, e)
	})
}

// Respawn moves e to its safe position, zeroes its velocity and resets its
// state machine. Entities without SafeRespawn only lose the request.
func (s *RespawnSystem) Respawn(w *ecs.World, e ecs.Entity) {
	defer ecs.Remove(w, e, component.RespawnRequestComponent.Kind())

	safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind())
	if !ok {
		return
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.Position = safe.Position
	}
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		pb.Body.SetPosition(safe.Position)
		pb.Body.SetVelocity(mgl64.Vec3{})
	}
	if loco, ok := ecs.Get(w, e, component.LocomotionComponent.Kind()); ok && loco.Machine != nil {
		loco.Machine.Reset()
		loco.State = loco.Machine.State()
	}
	ecs.Remove(w, e, component.DeathRequestComponent.Kind())
	s.log.Info("player respawned", "entity", e, "tick", s.clock.tick())
}
