package locomotion

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/logger"
)

// Facing is the body's yaw relative to the movement axis.
type Facing int8

const (
	FacingCamera Facing = iota
	FacingForward
	FacingBackward
)

func (f Facing) String() string {
	switch f {
	case FacingForward:
		return "forward"
	case FacingBackward:
		return "backward"
	default:
		return "camera"
	}
}

// Yaw returns the rotation about +Y, in radians, that faces f.
func (f Facing) Yaw() float64 {
	switch f {
	case FacingBackward:
		return math.Pi
	case FacingCamera:
		return -math.Pi / 2
	default:
		return 0
	}
}

// StepInput is everything MovementController.Step reads for one tick.
type StepInput struct {
	State State
	// Horizontal is the directional input in [-1, 1].
	Horizontal float64
	// Jump is the held jump request; the controller detects its rising edge.
	Jump bool
	// Previous is last tick's horizontal velocity.
	Previous         mgl64.Vec3
	VerticalVelocity float64
	Forward          mgl64.Vec3
	// Up is the impulse direction; zero means +Y.
	Up mgl64.Vec3
	DT float64
}

// Command is the movement response for one tick.
type Command struct {
	Horizontal   mgl64.Vec3
	Vertical     float64
	Impulse      mgl64.Vec3
	HasImpulse   bool
	JumpRejected bool
	Facing       Facing
}

// MotionSink is the physics body the command is written to.
type MotionSink interface {
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	ApplyImpulse(j mgl64.Vec3)
}

// MovementController turns input into a horizontal velocity and an optional
// jump impulse, gated by the locomotion state. It only reads the state.
type MovementController struct {
	tuning     Tuning
	log        *slog.Logger
	jumpHeld   bool
	facing     Facing
	rejections int
}

func NewMovementController(t Tuning, log *slog.Logger) (*MovementController, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.L()
	}
	return &MovementController{tuning: t, log: log.With("component", "movement")}, nil
}

// Tuning returns the active tuning.
func (c *MovementController) Tuning() Tuning {
	return c.tuning
}

// SetTuning swaps the tuning, keeping the current one when t is invalid.
func (c *MovementController) SetTuning(t Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.tuning = t
	return nil
}

// Facing returns the facing written by the last Step.
func (c *MovementController) Facing() Facing {
	return c.facing
}

// JumpRejections counts rising-edge jumps dropped because the player was falling.
func (c *MovementController) JumpRejections() int {
	return c.rejections
}

// Step computes the command for one tick.
func (c *MovementController) Step(in StepInput) Command {
	jumpEdge := in.Jump && !c.jumpHeld
	c.jumpHeld = in.Jump

	cmd := Command{Vertical: in.VerticalVelocity, Facing: c.facing}
	if in.State == Dead {
		return cmd
	}

	forward := in.Forward
	if forward.Len() > 0 {
		forward = forward.Normalize()
	}

	move := common.Clamp(common.Finite(in.Horizontal), -1, 1)
	switch {
	case move != 0:
		cmd.Horizontal = forward.Mul(move * c.tuning.MoveSpeed * in.DT)
	case in.Previous.Len() > c.tuning.StopEpsilon:
		cmd.Horizontal = c.decay(in.Previous, in.DT)
	}

	if jumpEdge {
		if in.State == Falling {
			c.rejections++
			cmd.JumpRejected = true
			c.log.Debug("jump rejected", "state", in.State.String(), "reason", "falling")
		} else {
			up := in.Up
			if up.Len() == 0 {
				up = mgl64.Vec3{0, 1, 0}
			}
			cmd.Impulse = up.Normalize().Mul(c.tuning.JumpImpulse)
			cmd.HasImpulse = true
		}
	}

	along := cmd.Horizontal.Dot(forward)
	switch {
	case along > 0:
		cmd.Facing = FacingForward
	case along < 0:
		cmd.Facing = FacingBackward
	default:
		cmd.Facing = FacingCamera
	}
	c.facing = cmd.Facing
	return cmd
}

// decay eases prev toward zero. The result is exactly zero once it falls to
// the stop epsilon.
func (c *MovementController) decay(prev mgl64.Vec3, dt float64) mgl64.Vec3 {
	if dt <= 0 {
		return prev
	}
	target := prev.Add(prev.Mul(-1).Mul(c.tuning.DecayFactor))
	next := common.LerpVec3(prev, target, common.Clamp01(c.tuning.Damping*dt))
	if next.Len() <= c.tuning.StopEpsilon {
		return mgl64.Vec3{}
	}
	return next
}

// Apply writes cmd to sink: the horizontal velocity replaces the body's
// horizontal component, the vertical component along basis.Up is kept, and the
// impulse, if any, is added.
func Apply(sink MotionSink, basis Basis, cmd Command) {
	if sink == nil {
		return
	}
	up := basis.Up
	if up.Len() == 0 {
		up = mgl64.Vec3{0, 1, 0}
	}
	up = up.Normalize()
	v := sink.Velocity()
	vertical := up.Mul(v.Dot(up))
	sink.SetVelocity(cmd.Horizontal.Add(vertical))
	if cmd.HasImpulse {
		sink.ApplyImpulse(cmd.Impulse)
	}
}
