package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/locomotion"
	"github.com/milk9111/platformer/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(center, extents mgl64.Vec3) world.Box {
	return world.Box{Bounds: locomotion.Bounds{Center: center, Extents: extents}}
}

func floor() world.Box {
	return box(mgl64.Vec3{0, -0.5, 0}, mgl64.Vec3{5, 0.5, 20})
}

func TestAddRejectsDuplicatesAndBadMass(t *testing.T) {
	s := NewSpace()
	require.NoError(t, s.AddStatic(1, floor()))
	require.ErrorIs(t, s.AddStatic(1, floor()), ErrDuplicateID)

	_, err := s.AddPlayer(2, box(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0.5, 1, 0.5}), 0)
	require.ErrorIs(t, err, ErrBadMass)
	require.ErrorIs(t, s.SetShapeEnabled(42, false), ErrUnknownID)
}

func TestPlayerFallsOntoFloor(t *testing.T) {
	s := NewSpace()
	require.NoError(t, s.AddStatic(1, floor()))
	player, err := s.AddPlayer(2, box(mgl64.Vec3{0.25, 3, 0}, mgl64.Vec3{0.5, 1, 0.5}), 5)
	require.NoError(t, err)

	for i := 0; i < 240; i++ {
		s.Step(1.0 / 60)
	}

	pos := player.Position()
	assert.InDelta(t, 1.0, pos.Y(), 0.15)
	assert.Equal(t, 0.25, pos.X(), "depth is carried, not simulated")
	assert.InDelta(t, 0.0, player.Velocity().Y(), 0.5)
}

func TestBodyMotionSink(t *testing.T) {
	s := NewSpace()
	player, err := s.AddPlayer(2, box(mgl64.Vec3{0, 3, 0}, mgl64.Vec3{0.5, 1, 0.5}), 5)
	require.NoError(t, err)

	var sink locomotion.MotionSink = player
	sink.SetVelocity(mgl64.Vec3{9, 1, 2})
	assert.Equal(t, mgl64.Vec3{0, 1, 2}, sink.Velocity())

	sink.ApplyImpulse(mgl64.Vec3{0, 25, 0})
	assert.InDelta(t, 6.0, sink.Velocity().Y(), 1e-9)
	assert.InDelta(t, 2.0, sink.Velocity().Z(), 1e-9)

	player.Translate(mgl64.Vec3{1, 0, 4})
	assert.Equal(t, mgl64.Vec3{1, 3, 4}, player.Position())
	assert.Equal(t, mgl64.Vec3{0.5, 1, 0.5}, player.Bounds().Extents)
}

func TestCastRayInPlane(t *testing.T) {
	s := NewSpace()
	require.NoError(t, s.AddStatic(1, floor()))
	_, err := s.AddPlayer(2, box(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0.5, 1, 0.5}), 5)
	require.NoError(t, err)

	hit, ok := s.CastRay(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, -1, 0}, 1.1)
	require.True(t, ok, "player shape is skipped, floor is hit")
	assert.Equal(t, uint64(1), hit.Collider)
	assert.InDelta(t, 1.0, hit.Distance, 1e-6)
	assert.InDelta(t, 1.0, hit.Normal.Y(), 1e-6)

	_, ok = s.CastRay(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, -1, 0}, 0.5)
	assert.False(t, ok)

	_, ok = s.CastRay(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, 10)
	assert.False(t, ok, "depth rays have no in-plane component")
}

func TestSetShapeEnabled(t *testing.T) {
	s := NewSpace()
	require.NoError(t, s.AddStatic(1, floor()))
	origin, down := mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, -1, 0}

	require.NoError(t, s.SetShapeEnabled(1, false))
	assert.False(t, s.ShapeEnabled(1))
	_, ok := s.CastRay(origin, down, 2)
	assert.False(t, ok)

	require.NoError(t, s.SetShapeEnabled(1, true))
	require.NoError(t, s.SetShapeEnabled(1, true))
	_, ok = s.CastRay(origin, down, 2)
	assert.True(t, ok)
}

func TestMoveKinematic(t *testing.T) {
	s := NewSpace()
	plat, err := s.AddKinematic(3, box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0.25, 2}))
	require.NoError(t, err)
	_, ok := s.Body(3)
	require.True(t, ok)

	plat.MoveKinematic(mgl64.Vec3{0, 0, 1}, 0.5)
	assert.InDelta(t, 2.0, plat.Velocity().Z(), 1e-9)

	plat.MoveKinematic(mgl64.Vec3{0, 0, 1}, 0)
	assert.InDelta(t, 2.0, plat.Velocity().Z(), 1e-9, "non-positive dt is ignored")
}

func TestProbeAgainstSpace(t *testing.T) {
	s := NewSpace()
	require.NoError(t, s.AddStatic(1, floor()))
	require.NoError(t, s.AddStatic(2, box(mgl64.Vec3{0, 2, 1.05}, mgl64.Vec3{5, 2, 0.5})))
	player, err := s.AddPlayer(10, box(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0.5, 1, 0.5}), 5)
	require.NoError(t, err)

	p, err := locomotion.NewEnvironmentProbe(s, 0.1)
	require.NoError(t, err)
	res := p.Sense(player.Bounds(), locomotion.DefaultBasis(), 0.1, 0)
	assert.True(t, res.Grounded)
	assert.True(t, res.TouchingWall)
	assert.False(t, res.TouchingCeiling)
	assert.Equal(t, uint64(1), res.Ground)
}

func TestTeleportedBodyIsQueryableBeforeStep(t *testing.T) {
	s := NewSpace()
	lift, err := s.AddKinematic(3, box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0.25, 1}))
	require.NoError(t, err)

	down := mgl64.Vec3{0, -1, 0}
	_, ok := s.CastRay(mgl64.Vec3{0, 2, 0}, down, 5)
	require.True(t, ok)

	lift.SetPosition(mgl64.Vec3{0, 0, 10})
	_, ok = s.CastRay(mgl64.Vec3{0, 2, 0}, down, 5)
	assert.False(t, ok, "old position is empty")
	hit, ok := s.CastRay(mgl64.Vec3{0, 2, 10}, down, 5)
	require.True(t, ok)
	assert.Equal(t, uint64(3), hit.Collider)
	assert.InDelta(t, 1.75, hit.Distance, 1e-6)
	assert.True(t, s.ShapeEnabled(3))
}

func TestTeleportKeepsDisabledShapeOut(t *testing.T) {
	s := NewSpace()
	lift, err := s.AddKinematic(3, box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0.25, 1}))
	require.NoError(t, err)
	require.NoError(t, s.SetShapeEnabled(3, false))

	lift.SetPosition(mgl64.Vec3{0, 0, 4})
	_, ok := s.CastRay(mgl64.Vec3{0, 2, 4}, mgl64.Vec3{0, -1, 0}, 5)
	assert.False(t, ok)

	require.NoError(t, s.SetShapeEnabled(3, true))
	_, ok = s.CastRay(mgl64.Vec3{0, 2, 4}, mgl64.Vec3{0, -1, 0}, 5)
	assert.True(t, ok)
}
