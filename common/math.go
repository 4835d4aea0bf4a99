package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Gravity is the downward acceleration applied by the physics space, in units/s².
const Gravity = 9.81

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpClamped is Lerp with t clamped to [0, 1].
func LerpClamped(a, b, t float64) float64 {
	return Lerp(a, b, Clamp01(t))
}

func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// PingPong bounces t between 0 and length.
func PingPong(t, length float64) float64 {
	if length <= 0 {
		return 0
	}
	t = math.Mod(t, length*2)
	if t < 0 {
		t += length * 2
	}
	return length - math.Abs(t-length)
}

// EaseInOutCos maps [0,1] onto a cosine S-curve.
func EaseInOutCos(t float64) float64 {
	return 0.5 * (1 - math.Cos(math.Pi*t))
}

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
