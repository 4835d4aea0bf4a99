package entity

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

// NewCameraComponent fills unset camera fields with the follow defaults.
func NewCameraComponent(spec prefabs.CameraComponentSpec) component.Camera {
	cam := component.Camera{
		TargetName:   spec.Target,
		Offset:       spec.Offset.Vec3(),
		FollowSpeed:  spec.FollowSpeed,
		ZoomForSpeed: spec.ZoomForSpeed,
		MinZoom:      spec.MinZoom,
		MaxZoom:      spec.MaxZoom,
		ZoomSpeed:    spec.ZoomSpeed,
		ZoomEasing:   spec.ZoomEasing,
	}
	if cam.TargetName == "" {
		cam.TargetName = "player"
	}
	if cam.Offset == (mgl64.Vec3{}) {
		cam.Offset = mgl64.Vec3{5, 3, 0}
	}
	if cam.FollowSpeed <= 0 {
		cam.FollowSpeed = 5
	}
	if cam.MinZoom <= 0 {
		cam.MinZoom = 5
	}
	if cam.MaxZoom <= 0 {
		cam.MaxZoom = 25
	}
	if cam.ZoomSpeed <= 0 {
		cam.ZoomSpeed = 10
	}
	if cam.ZoomEasing <= 0 {
		cam.ZoomEasing = 0.1
	}
	cam.Zoom = cam.MaxZoom
	return cam
}

func NewCamera(w *ecs.World, prefab string, log *slog.Logger) (ecs.Entity, error) {
	if prefab == "" {
		prefab = "camera.yaml"
	}
	return BuildEntityWithLogger(w, prefab, log)
}

func NewCameraAt(w *ecs.World, prefab string, pos mgl64.Vec3, log *slog.Logger) (ecs.Entity, error) {
	camera, err := NewCamera(w, prefab, log)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, camera, pos, 0); err != nil {
		return 0, fmt.Errorf("camera: override transform: %w", err)
	}
	return camera, nil
}
