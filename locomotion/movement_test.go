package locomotion

import (
	"bytes"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBody struct {
	vel      mgl64.Vec3
	impulses []mgl64.Vec3
}

func (b *fakeBody) Velocity() mgl64.Vec3 { return b.vel }
func (b *fakeBody) SetVelocity(v mgl64.Vec3) { b.vel = v }
func (b *fakeBody) ApplyImpulse(j mgl64.Vec3) { b.impulses = append(b.impulses, j) }

func newController(t *testing.T) *MovementController {
	t.Helper()
	c, err := NewMovementController(DefaultTuning(), logger.Discard())
	require.NoError(t, err)
	return c
}

func stepIn(state State, horizontal float64, jump bool, prev mgl64.Vec3) StepInput {
	return StepInput{
		State:      state,
		Horizontal: horizontal,
		Jump:       jump,
		Previous:   prev,
		Forward:    forward,
		DT:         1.0 / 60,
	}
}

func TestNewMovementControllerRejectsBadTuning(t *testing.T) {
	tn := DefaultTuning()
	tn.DecayFactor = 0
	_, err := NewMovementController(tn, logger.Discard())
	require.ErrorIs(t, err, ErrInvalidTuning)
	assert.Contains(t, err.Error(), "decay_factor")

	tn = DefaultTuning()
	tn.MoveSpeed = math.NaN()
	_, err = NewMovementController(tn, logger.Discard())
	require.ErrorIs(t, err, ErrInvalidTuning)
}

func TestStepHorizontalInput(t *testing.T) {
	cases := []struct {
		name   string
		input  float64
		want   float64
		facing Facing
	}{
		{"full_forward", 1, 200.0 / 60, FacingForward},
		{"full_backward", -1, -200.0 / 60, FacingBackward},
		{"half", 0.5, 100.0 / 60, FacingForward},
		{"clamped", 3, 200.0 / 60, FacingForward},
		{"clamped_negative", -7, -200.0 / 60, FacingBackward},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctl := newController(t)
			cmd := ctl.Step(stepIn(Locomoting, c.input, false, mgl64.Vec3{}))
			assert.InDelta(t, c.want, cmd.Horizontal.Z(), 1e-9)
			assert.Zero(t, cmd.Horizontal.X())
			assert.Zero(t, cmd.Horizontal.Y())
			assert.Equal(t, c.facing, cmd.Facing)
			assert.Equal(t, c.facing, ctl.Facing())
		})
	}
}

func TestStepZeroInputAtRest(t *testing.T) {
	ctl := newController(t)
	cmd := ctl.Step(stepIn(Locomoting, 0, false, mgl64.Vec3{}))
	assert.Equal(t, mgl64.Vec3{}, cmd.Horizontal)
	assert.Equal(t, FacingCamera, cmd.Facing)

	cmd = ctl.Step(stepIn(Locomoting, math.NaN(), false, mgl64.Vec3{}))
	assert.Equal(t, mgl64.Vec3{}, cmd.Horizontal)
}

func TestStepDecaysToZero(t *testing.T) {
	ctl := newController(t)
	v := mgl64.Vec3{0, 0, 200.0 / 60}
	prev := v.Len()

	reachedZero := false
	for i := 0; i < 2000; i++ {
		cmd := ctl.Step(stepIn(Locomoting, 0, false, v))
		v = cmd.Horizontal
		if v.Len() == 0 {
			reachedZero = true
			assert.Equal(t, mgl64.Vec3{}, v)
			break
		}
		require.Less(t, v.Len(), prev, "tick %d", i)
		require.Greater(t, v.Z(), 0.0, "decay never reverses direction")
		prev = v.Len()
	}
	assert.True(t, reachedZero)

	cmd := ctl.Step(stepIn(Locomoting, 0, false, v))
	assert.Equal(t, mgl64.Vec3{}, cmd.Horizontal)
}

func TestStepDecayNonPositiveDT(t *testing.T) {
	ctl := newController(t)
	prev := mgl64.Vec3{0, 0, 2}
	in := stepIn(Locomoting, 0, false, prev)
	in.DT = 0
	assert.Equal(t, prev, ctl.Step(in).Horizontal)
	in.DT = -1
	assert.Equal(t, prev, ctl.Step(in).Horizontal)
}

func TestStepJumpRisingEdge(t *testing.T) {
	ctl := newController(t)

	cmd := ctl.Step(stepIn(Locomoting, 0, true, mgl64.Vec3{}))
	require.True(t, cmd.HasImpulse)
	assert.Equal(t, mgl64.Vec3{0, 25, 0}, cmd.Impulse)

	for i := 0; i < 3; i++ {
		cmd = ctl.Step(stepIn(Locomoting, 0, true, mgl64.Vec3{}))
		assert.False(t, cmd.HasImpulse, "held jump fires once")
	}

	ctl.Step(stepIn(Locomoting, 0, false, mgl64.Vec3{}))
	cmd = ctl.Step(stepIn(Locomoting, 0, true, mgl64.Vec3{}))
	assert.True(t, cmd.HasImpulse)
}

func TestStepJumpAllowedOutsideFalling(t *testing.T) {
	for _, s := range []State{Locomoting, Wall, Hang, Flying} {
		t.Run(s.String(), func(t *testing.T) {
			ctl := newController(t)
			cmd := ctl.Step(stepIn(s, 0, true, mgl64.Vec3{}))
			assert.True(t, cmd.HasImpulse)
			assert.False(t, cmd.JumpRejected)
		})
	}
}

func TestStepJumpRejectedWhileFalling(t *testing.T) {
	var buf bytes.Buffer
	ctl, err := NewMovementController(DefaultTuning(), logger.New(logger.Config{Level: "debug", Output: &buf}))
	require.NoError(t, err)

	cmd := ctl.Step(stepIn(Falling, 1, true, mgl64.Vec3{}))
	assert.False(t, cmd.HasImpulse)
	assert.True(t, cmd.JumpRejected)
	assert.Equal(t, 1, ctl.JumpRejections())
	assert.Contains(t, buf.String(), "jump rejected")
	assert.Contains(t, buf.String(), "state=falling")
	assert.InDelta(t, 200.0/60, cmd.Horizontal.Z(), 1e-9, "air control still applies")

	// Still held after landing: no edge, no jump.
	cmd = ctl.Step(stepIn(Locomoting, 0, true, mgl64.Vec3{}))
	assert.False(t, cmd.HasImpulse)
	assert.Equal(t, 1, ctl.JumpRejections())
}

func TestStepDeadIsImmobile(t *testing.T) {
	ctl := newController(t)
	ctl.Step(stepIn(Locomoting, 1, false, mgl64.Vec3{}))
	require.Equal(t, FacingForward, ctl.Facing())

	in := stepIn(Dead, -1, true, mgl64.Vec3{0, 0, 3})
	in.VerticalVelocity = -4
	cmd := ctl.Step(in)
	assert.Equal(t, mgl64.Vec3{}, cmd.Horizontal)
	assert.False(t, cmd.HasImpulse)
	assert.False(t, cmd.JumpRejected)
	assert.Equal(t, -4.0, cmd.Vertical)
	assert.Equal(t, FacingForward, cmd.Facing)
}

func TestApplyKeepsVerticalVelocity(t *testing.T) {
	body := &fakeBody{vel: mgl64.Vec3{0.5, -3, 9}}
	Apply(body, DefaultBasis(), Command{
		Horizontal: mgl64.Vec3{0, 0, 2},
		Impulse:    mgl64.Vec3{0, 25, 0},
		HasImpulse: true,
	})
	assert.Equal(t, mgl64.Vec3{0, -3, 2}, body.vel)
	require.Len(t, body.impulses, 1)
	assert.Equal(t, mgl64.Vec3{0, 25, 0}, body.impulses[0])

	Apply(body, DefaultBasis(), Command{})
	assert.Equal(t, mgl64.Vec3{0, -3, 0}, body.vel)
	assert.Len(t, body.impulses, 1)

	Apply(nil, DefaultBasis(), Command{})
}

func TestSetTuningKeepsCurrentOnError(t *testing.T) {
	ctl := newController(t)
	bad := DefaultTuning()
	bad.StopEpsilon = -1
	require.Error(t, ctl.SetTuning(bad))
	assert.Equal(t, DefaultTuning(), ctl.Tuning())

	fast := DefaultTuning()
	fast.MoveSpeed = 400
	require.NoError(t, ctl.SetTuning(fast))
	cmd := ctl.Step(stepIn(Locomoting, 1, false, mgl64.Vec3{}))
	assert.InDelta(t, 400.0/60, cmd.Horizontal.Z(), 1e-9)
}

func TestFacingYaw(t *testing.T) {
	assert.Equal(t, 0.0, FacingForward.Yaw())
	assert.Equal(t, math.Pi, FacingBackward.Yaw())
	assert.Equal(t, -math.Pi/2, FacingCamera.Yaw())
}
