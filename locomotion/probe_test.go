package locomotion

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type castCall struct {
	origin, dir mgl64.Vec3
	maxDist     float64
}

// fakeCaster reports a hit for any ray whose direction is in hits and whose
// length reaches the stored distance.
type fakeCaster struct {
	hits  map[mgl64.Vec3]float64
	calls []castCall
}

func newFakeCaster() *fakeCaster {
	return &fakeCaster{hits: make(map[mgl64.Vec3]float64)}
}

func (f *fakeCaster) at(dir mgl64.Vec3, dist float64) *fakeCaster {
	f.hits[dir] = dist
	return f
}

func (f *fakeCaster) CastRay(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	f.calls = append(f.calls, castCall{origin, dir, maxDist})
	for d, dist := range f.hits {
		if d.ApproxEqual(dir) && dist <= maxDist {
			return Hit{Distance: dist, Point: origin.Add(dir.Mul(dist)), Normal: dir.Mul(-1), Collider: 7}, true
		}
	}
	return Hit{}, false
}

var (
	down     = mgl64.Vec3{0, -1, 0}
	up       = mgl64.Vec3{0, 1, 0}
	forward  = mgl64.Vec3{0, 0, 1}
	backward = mgl64.Vec3{0, 0, -1}
	left     = mgl64.Vec3{-1, 0, 0}
	right    = mgl64.Vec3{1, 0, 0}
)

func playerBounds() Bounds {
	return Bounds{Center: mgl64.Vec3{0, 1, 0}, Extents: mgl64.Vec3{0.5, 1, 0.5}}
}

func TestNewEnvironmentProbeRequiresCaster(t *testing.T) {
	_, err := NewEnvironmentProbe(nil, 0.1)
	require.ErrorIs(t, err, ErrNilRayCaster)

	_, err = NewEnvironmentProbe(newFakeCaster(), -1)
	require.ErrorIs(t, err, ErrInvalidFallThreshold)
}

func TestSenseRayLengths(t *testing.T) {
	fc := newFakeCaster()
	p, err := NewEnvironmentProbe(fc, 0.1)
	require.NoError(t, err)

	p.Sense(playerBounds(), DefaultBasis(), 0.25, 0)

	require.Len(t, fc.calls, 6)
	want := map[mgl64.Vec3]float64{
		down:     1.25,
		forward:  0.75,
		backward: 0.75,
		left:     0.75,
		right:    0.75,
		up:       1.25,
	}
	for _, c := range fc.calls {
		assert.Equal(t, playerBounds().Center, c.origin)
		found := false
		for dir, length := range want {
			if dir.ApproxEqual(c.dir) {
				assert.InDelta(t, length, c.maxDist, 1e-9, "dir %v", c.dir)
				found = true
			}
		}
		assert.True(t, found, "unexpected direction %v", c.dir)
	}
}

func TestSenseClassifiesContacts(t *testing.T) {
	cases := []struct {
		name   string
		hits   map[mgl64.Vec3]float64
		vy     float64
		expect ProbeResult
	}{
		{"ground", map[mgl64.Vec3]float64{down: 1.0}, 0, ProbeResult{Grounded: true, Ground: 7}},
		{"wall_forward", map[mgl64.Vec3]float64{forward: 0.5}, -5, ProbeResult{TouchingWall: true}},
		{"wall_depth", map[mgl64.Vec3]float64{left: 0.6}, 0, ProbeResult{TouchingWall: true}},
		{"ceiling", map[mgl64.Vec3]float64{up: 1.05}, 0, ProbeResult{TouchingCeiling: true}},
		{"free_fall", nil, -3, ProbeResult{Falling: true}},
		{"slow_descent_not_falling", nil, -0.05, ProbeResult{}},
		{"rising_not_falling", nil, 4, ProbeResult{}},
		{"out_of_range", map[mgl64.Vec3]float64{down: 2}, 0, ProbeResult{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fc := newFakeCaster()
			for d, dist := range c.hits {
				fc.at(d, dist)
			}
			p, err := NewEnvironmentProbe(fc, 0.1)
			require.NoError(t, err)

			got := p.Sense(playerBounds(), DefaultBasis(), 0.1, c.vy)
			assert.Equal(t, c.expect, got)
		})
	}
}

func TestSenseClampsDegenerateGeometry(t *testing.T) {
	fc := newFakeCaster()
	p, err := NewEnvironmentProbe(fc, 0)
	require.NoError(t, err)

	p.Sense(Bounds{}, DefaultBasis(), -4, 0)

	require.Len(t, fc.calls, 6)
	for _, c := range fc.calls {
		assert.Equal(t, MinProbeLength, c.maxDist)
	}
}

func TestSenseRecordsRays(t *testing.T) {
	fc := newFakeCaster().at(down, 1)
	p, err := NewEnvironmentProbe(fc, 0.1)
	require.NoError(t, err)

	p.Sense(playerBounds(), DefaultBasis(), 0.1, 0)

	rays := p.Rays()
	require.Len(t, rays, 6)
	assert.True(t, rays[0].Hit)
	assert.True(t, rays[0].Dir.ApproxEqual(down))
	for _, r := range rays[1:] {
		assert.False(t, r.Hit)
	}
}

func TestHalfExtentAlong(t *testing.T) {
	b := Bounds{Extents: mgl64.Vec3{0.5, 1, 0.25}}
	assert.InDelta(t, 1, b.HalfExtentAlong(up), 1e-12)
	assert.InDelta(t, 0.25, b.HalfExtentAlong(backward), 1e-12)
	assert.InDelta(t, 0.5, b.HalfExtentAlong(left), 1e-12)
}
