package locomotion

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MinProbeLength is the shortest ray the probe will cast.
const MinProbeLength = 1e-3

var (
	ErrNilRayCaster         = errors.New("locomotion: nil ray caster")
	ErrInvalidFallThreshold = errors.New("locomotion: invalid falling threshold")
)

// Bounds is an axis-aligned collider volume. Extents are half sizes.
type Bounds struct {
	Center  mgl64.Vec3
	Extents mgl64.Vec3
}

// HalfExtentAlong returns the distance from the centre to the box surface along dir.
func (b Bounds) HalfExtentAlong(dir mgl64.Vec3) float64 {
	return math.Abs(dir.X())*math.Abs(b.Extents.X()) +
		math.Abs(dir.Y())*math.Abs(b.Extents.Y()) +
		math.Abs(dir.Z())*math.Abs(b.Extents.Z())
}

// Basis holds the unit axes a probe casts along.
type Basis struct {
	Forward mgl64.Vec3
	Right   mgl64.Vec3
	Up      mgl64.Vec3
}

// DefaultBasis is the side-scroller basis: +Z forward, +X right (depth), +Y up.
func DefaultBasis() Basis {
	return Basis{
		Forward: mgl64.Vec3{0, 0, 1},
		Right:   mgl64.Vec3{1, 0, 0},
		Up:      mgl64.Vec3{0, 1, 0},
	}
}

// Hit describes the nearest surface a ray reached.
type Hit struct {
	Distance float64
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Collider uint64
}

// RayCaster answers read-only ray queries against the world.
type RayCaster interface {
	CastRay(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool)
}

// RayCasterFunc adapts a function to RayCaster.
type RayCasterFunc func(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool)

func (f RayCasterFunc) CastRay(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	return f(origin, dir, maxDist)
}

// ProbeResult is recomputed every step and owned by the probe for that step.
type ProbeResult struct {
	Grounded        bool
	TouchingWall    bool
	TouchingCeiling bool
	Falling         bool
	// Ground is the collider hit by the downward ray, 0 when not grounded.
	Ground uint64
}

// ProbeRay records one cast for debug drawing.
type ProbeRay struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
	Length float64
	Hit    bool
}

type probeDir int

const (
	probeDown probeDir = iota
	probeForward
	probeBackward
	probeLeft
	probeRight
	probeUp
	probeDirCount
)

// EnvironmentProbe classifies contact with ground, walls, and ceilings by casting
// rays from the collider centre.
type EnvironmentProbe struct {
	caster           RayCaster
	fallingThreshold float64
	rays             [probeDirCount]ProbeRay
}

func NewEnvironmentProbe(caster RayCaster, fallingThreshold float64) (*EnvironmentProbe, error) {
	if caster == nil {
		return nil, ErrNilRayCaster
	}
	if math.IsNaN(fallingThreshold) || math.IsInf(fallingThreshold, 0) || fallingThreshold < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFallThreshold, fallingThreshold)
	}
	return &EnvironmentProbe{caster: caster, fallingThreshold: fallingThreshold}, nil
}

// SetFallingThreshold replaces the free-fall speed threshold. Invalid values are ignored.
func (p *EnvironmentProbe) SetFallingThreshold(v float64) {
	if p == nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return
	}
	p.fallingThreshold = v
}

// Sense casts the down, horizontal, and up rays and derives the falling flag
// from verticalVelocity.
func (p *EnvironmentProbe) Sense(b Bounds, basis Basis, probeRange, verticalVelocity float64) ProbeResult {
	if math.IsNaN(probeRange) || probeRange < 0 {
		probeRange = 0
	}

	var res ProbeResult
	if hit, ok := p.cast(probeDown, b, basis.Up.Mul(-1), probeRange); ok {
		res.Grounded = true
		res.Ground = hit.Collider
	}

	for _, d := range []struct {
		slot probeDir
		dir  mgl64.Vec3
	}{
		{probeForward, basis.Forward},
		{probeBackward, basis.Forward.Mul(-1)},
		{probeLeft, basis.Right.Mul(-1)},
		{probeRight, basis.Right},
	} {
		if _, ok := p.cast(d.slot, b, d.dir, probeRange); ok {
			res.TouchingWall = true
		}
	}

	if _, ok := p.cast(probeUp, b, basis.Up, probeRange); ok {
		res.TouchingCeiling = true
	}

	res.Falling = !res.Grounded && !res.TouchingWall && !res.TouchingCeiling &&
		verticalVelocity < -p.fallingThreshold
	return res
}

// Rays returns the casts made by the last Sense call.
func (p *EnvironmentProbe) Rays() []ProbeRay {
	if p == nil {
		return nil
	}
	out := make([]ProbeRay, len(p.rays))
	copy(out, p.rays[:])
	return out
}

func (p *EnvironmentProbe) cast(slot probeDir, b Bounds, dir mgl64.Vec3, probeRange float64) (Hit, bool) {
	p.rays[slot] = ProbeRay{Origin: b.Center}
	if dir.Len() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()
	length := b.HalfExtentAlong(dir) + probeRange
	if math.IsNaN(length) || length < MinProbeLength {
		length = MinProbeLength
	}
	hit, ok := p.caster.CastRay(b.Center, dir, length)
	p.rays[slot] = ProbeRay{Origin: b.Center, Dir: dir, Length: length, Hit: ok}
	return hit, ok
}
