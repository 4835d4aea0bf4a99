package locomotion

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidTuning = errors.New("locomotion: invalid tuning")

// Tuning holds the movement constants. Zero values are not usable; start from
// DefaultTuning.
type Tuning struct {
	MoveSpeed        float64
	JumpImpulse      float64
	ProbeRange       float64
	FallingThreshold float64
	// Damping is the rate of the stop decay, scaled by dt.
	Damping float64
	// DecayFactor is applied to the reversed previous direction.
	DecayFactor float64
	StopEpsilon float64
}

func DefaultTuning() Tuning {
	return Tuning{
		MoveSpeed:        200,
		JumpImpulse:      25,
		ProbeRange:       0.1,
		FallingThreshold: 0.1,
		Damping:          5,
		DecayFactor:      0.4,
		StopEpsilon:      1e-3,
	}
}

// Validate reports the first unusable field.
func (t Tuning) Validate() error {
	checks := []struct {
		name string
		v    float64
		ok   func(float64) bool
	}{
		{"move_speed", t.MoveSpeed, func(v float64) bool { return v >= 0 }},
		{"jump_impulse", t.JumpImpulse, func(v float64) bool { return v >= 0 }},
		{"probe_range", t.ProbeRange, func(v float64) bool { return v >= 0 }},
		{"falling_threshold", t.FallingThreshold, func(v float64) bool { return v >= 0 }},
		{"damping", t.Damping, func(v float64) bool { return v > 0 }},
		{"decay_factor", t.DecayFactor, func(v float64) bool { return v > 0 && v <= 1 }},
		{"stop_epsilon", t.StopEpsilon, func(v float64) bool { return v > 0 }},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) || !c.ok(c.v) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidTuning, c.name, c.v)
		}
	}
	return nil
}
