package system

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/event"
)

// Clock is the fixed step shared by every system in a scene. The owner
// advances Tick after each scheduler update.
type Clock struct {
	DT   float64
	Tick uint64
}

func (c *Clock) dt() float64 {
	if c == nil {
		return 0
	}
	return c.DT
}

func (c *Clock) tick() uint64 {
	if c == nil {
		return 0
	}
	return c.Tick
}

// Geometry is the collision state that platform systems keep in step with
// their components. Ids are entity ids.
type Geometry interface {
	Move(id uint64, center mgl64.Vec3) error
	SetEnabled(id uint64, enabled bool) error
}

func publish(bus *event.Bus, topic string, evt any) {
	if bus == nil {
		return
	}
	bus.Publish(topic, evt)
}

// request files a zero-value marker component such as a DeathRequest on e.
func request[T any](w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], log *slog.Logger) bool {
	var marker T
	if err := ecs.Add(w, e, kind, &marker); err != nil {
		log.Error("file request", "entity", e, "err", err)
		return false
	}
	return true
}

func objectName(w *ecs.World, e ecs.Entity) string {
	if n, ok := ecs.Get(w, e, component.WorldObjectComponent.Kind()); ok {
		return n.Name
	}
	return ""
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	for _, e := range w.Query(component.WorldObjectComponent.Kind()) {
		if objectName(w, e) == name {
			return e
		}
	}
	return 0
}

// standingOn reports whether any player's probe found platform underfoot.
func standingOn(w *ecs.World, platform ecs.Entity) bool {
	for _, e := range w.Query(component.PlayerTagComponent.Kind(), component.ProbeComponent.Kind()) {
		p, ok := ecs.Get(w, e, component.ProbeComponent.Kind())
		if ok && p.Result.Grounded && p.Result.Ground == platform.ColliderID() {
			return true
		}
	}
	return false
}
