package component

import "github.com/go-gl/mathgl/mgl64"

type Camera struct {
	TargetName   string
	Offset       mgl64.Vec3
	FollowSpeed  float64
	ZoomForSpeed bool
	MinZoom      float64
	MaxZoom      float64
	ZoomSpeed    float64
	ZoomEasing   float64
	Zoom         float64
}

var CameraComponent = NewComponent[Camera]()
