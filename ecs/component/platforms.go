package component

import "github.com/go-gl/mathgl/mgl64"

// MovingPlatform ping-pongs between two targets with cosine easing.
type MovingPlatform struct {
	Left  mgl64.Vec3
	Right mgl64.Vec3
	Speed float64

	Time float64
	// Delta is the displacement applied on the last tick.
	Delta mgl64.Vec3
	// Heading is +1 while the phase rises toward Left, -1 on the way back.
	Heading int
}

var MovingPlatformComponent = NewComponent[MovingPlatform]()

// DisappearingPlatform fades out after the player has stood on it for
// DisappearAfter seconds, and optionally fades back in.
type DisappearingPlatform struct {
	DisappearAfter float64
	DisappearRate  float64
	Reappear       bool
	ReappearRate   float64
	ReappearDelay  float64

	Alpha        float64
	Waiting      bool
	Wait         float64
	Disappearing bool
	Delay        float64
	Solid        bool
}

var DisappearingPlatformComponent = NewComponent[DisappearingPlatform]()
