package system

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// CameraSystem eases the camera toward its target plus offset and, when
// enabled, zooms out as the target speeds up.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
	clock        *Clock
}

func NewCameraSystem(clock *Clock) *CameraSystem {
	return &CameraSystem{clock: clock}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !w.IsAlive(cs.camEntity) || !ecs.Has(w, cs.camEntity, component.CameraComponent.Kind()) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	if !w.IsAlive(cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, cam.TargetName)
	}

	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	dt := cs.clock.dt()
	camTransform.Position = common.LerpVec3(camTransform.Position, target.Position.Add(cam.Offset), common.Clamp01(cam.FollowSpeed*dt))

	if !cam.ZoomForSpeed {
		return
	}
	speed := 0.0
	if pb, ok := ecs.Get(w, cs.targetEntity, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		speed = pb.Body.Velocity().Len()
	}
	level := common.Lerp(cam.MaxZoom, cam.MinZoom, common.Clamp01(speed/cam.ZoomSpeed))
	cam.Zoom = common.Lerp(cam.Zoom, level, cam.ZoomEasing)
}
