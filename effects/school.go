package effects

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/common"
)

var ErrBadSchool = errors.New("effects: invalid school config")

// fishForward is the local axis a fish swims along.
var (
	fishForward = mgl64.Vec3{0, 0, 1}
	fishUp      = mgl64.Vec3{0, 1, 0}
)

type SchoolConfig struct {
	Count           int        `yaml:"count"`
	Center          mgl64.Vec3 `yaml:"-"`
	Bounds          mgl64.Vec3 `yaml:"-"`
	SpawnHeight     float64    `yaml:"spawn_height"`
	SwimSpeed       float64    `yaml:"swim_speed"`
	TurnSpeed       float64    `yaml:"turn_speed"`
	ChangeFrequency int        `yaml:"change_frequency"`
	Seed            uint64     `yaml:"seed"`
}

type Fish struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	// Velocity is the heading the fish turns toward; only its direction matters.
	Velocity mgl64.Vec3
}

// Forward returns the direction the fish is swimming.
func (f Fish) Forward() mgl64.Vec3 {
	return f.Rotation.Rotate(fishForward)
}

// School moves fish inside a horizontal box. Each fish is updated
// independently of the others, so Update may run them in parallel.
type School struct {
	cfg  SchoolConfig
	fish []Fish
	tick uint64
}

func NewSchool(cfg SchoolConfig) (*School, error) {
	if cfg.Count < 0 || cfg.ChangeFrequency <= 0 || cfg.Bounds.X() < 0 || cfg.Bounds.Z() < 0 {
		return nil, ErrBadSchool
	}
	r := rand.New(rand.NewPCG(cfg.Seed, 0))
	s := &School{cfg: cfg, fish: make([]Fish, cfg.Count)}
	for i := range s.fish {
		s.fish[i] = Fish{
			Position: cfg.Center.Add(mgl64.Vec3{
				between(r, -cfg.Bounds.X()/2, cfg.Bounds.X()/2),
				cfg.SpawnHeight,
				between(r, -cfg.Bounds.Z()/2, cfg.Bounds.Z()/2),
			}),
			Rotation: mgl64.QuatIdent(),
		}
	}
	return s, nil
}

func (s *School) Fish() []Fish {
	if s == nil {
		return nil
	}
	return s.fish
}

// Update advances every fish by dt.
func (s *School) Update(ctx context.Context, dt float64, workers int) error {
	if s == nil || !(dt > 0) {
		return nil
	}
	s.tick++
	return ParallelFor(ctx, len(s.fish), DefaultBatch, workers, func(i int) error {
		s.step(i, dt)
		return nil
	})
}

func (s *School) step(i int, dt float64) {
	cfg := s.cfg
	r := rand.New(rand.NewPCG(cfg.Seed^s.tick, uint64(i)+1))
	f := s.fish[i]

	f.Position = f.Position.Add(f.Forward().Mul(cfg.SwimSpeed * dt * between(r, 0.3, 1)))

	if f.Velocity.Len() > 0 {
		f.Rotation = turnToward(f.Rotation, f.Velocity, cfg.TurnSpeed*dt)
	}

	half := cfg.Bounds.Mul(0.5)
	p := f.Position
	if p.X() > cfg.Center.X()+half.X() || p.X() < cfg.Center.X()-half.X() ||
		p.Z() > cfg.Center.Z()+half.Z() || p.Z() < cfg.Center.Z()-half.Z() {
		inside := mgl64.Vec3{
			cfg.Center.X() + between(r, -half.X(), half.X())/1.3,
			p.Y(),
			cfg.Center.Z() + between(r, -half.Z(), half.Z())/1.3,
		}
		if d := inside.Sub(p); d.Len() > 0 {
			f.Velocity = d.Normalize()
			f.Rotation = turnToward(f.Rotation, f.Velocity, cfg.TurnSpeed*dt*2)
		}
	} else if r.IntN(cfg.ChangeFrequency) <= 2 {
		f.Velocity = mgl64.Vec3{between(r, -1, 1), 0, between(r, -1, 1)}
	}

	s.fish[i] = f
}

// turnToward yaws q about +Y by the given fraction of the shortest turn that
// faces dir. Fish only ever turn in the horizontal plane, so a target behind
// the fish still turns it one consistent way.
func turnToward(q mgl64.Quat, dir mgl64.Vec3, amount float64) mgl64.Quat {
	if dir.X() == 0 && dir.Z() == 0 {
		return q
	}
	fwd := q.Rotate(fishForward)
	yaw := math.Atan2(fwd.X(), fwd.Z())
	delta := math.Remainder(math.Atan2(dir.X(), dir.Z())-yaw, 2*math.Pi)
	return mgl64.QuatRotate(yaw+delta*common.Clamp01(amount), fishUp)
}

func between(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
