package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/locomotion"
	"github.com/milk9111/platformer/world"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlatform
	collisionTypePlayer
)

// playerGroup keeps plane ray queries from reporting the player's own shape.
const playerGroup uint = 1

var (
	ErrDuplicateID = errors.New("physics: duplicate shape id")
	ErrUnknownID   = errors.New("physics: unknown shape id")
	ErrBadMass     = errors.New("physics: mass must be positive")
)

// Space owns the Chipmunk space. Its plane is (world Z, world Y): cp X is the
// movement axis and cp Y is up. The depth axis (world X) is carried on bodies
// but never simulated.
type Space struct {
	space   *cp.Space
	shapes  map[uint64]*cp.Shape
	enabled map[uint64]bool
	bodies  map[uint64]*Body
	filter  cp.ShapeFilter
}

func NewSpace() *Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: -common.Gravity})
	return &Space{
		space:   space,
		shapes:  make(map[uint64]*cp.Shape),
		enabled: make(map[uint64]bool),
		bodies:  make(map[uint64]*Body),
		filter:  cp.NewShapeFilter(playerGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES),
	}
}

// Raw returns the underlying Chipmunk space.
func (s *Space) Raw() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// AddStatic adds an immovable box attached to the space's static body.
func (s *Space) AddStatic(id uint64, b world.Box) error {
	if err := s.claim(id); err != nil {
		return err
	}
	c, ext := b.Bounds.Center, b.Bounds.Extents
	bb := cp.BB{
		L: c.Z() - math.Abs(ext.Z()),
		B: c.Y() - math.Abs(ext.Y()),
		R: c.Z() + math.Abs(ext.Z()),
		T: c.Y() + math.Abs(ext.Y()),
	}
	shape := cp.NewBox2(s.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeSolid)
	shape.UserData = id
	s.space.AddShape(shape)
	s.shapes[id] = shape
	s.enabled[id] = true
	return nil
}

// AddKinematic adds a box moved by code, for platforms.
func (s *Space) AddKinematic(id uint64, b world.Box) (*Body, error) {
	if err := s.claim(id); err != nil {
		return nil, err
	}
	body := cp.NewKinematicBody()
	shape := s.attachBox(body, b.Bounds)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypePlatform)
	shape.UserData = id
	return s.register(id, body, shape, b.Bounds), nil
}

// AddPlayer adds the dynamic, non-rotating player box.
func (s *Space) AddPlayer(id uint64, b world.Box, mass float64) (*Body, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadMass, mass)
	}
	if err := s.claim(id); err != nil {
		return nil, err
	}
	body := cp.NewBody(mass, cp.INFINITY)
	shape := s.attachBox(body, b.Bounds)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypePlayer)
	shape.SetFilter(s.filter)
	shape.UserData = id
	return s.register(id, body, shape, b.Bounds), nil
}

func (s *Space) claim(id uint64) error {
	if _, ok := s.shapes[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}
	return nil
}

func (s *Space) attachBox(body *cp.Body, b locomotion.Bounds) *cp.Shape {
	body.SetPosition(toPlane(b.Center))
	s.space.AddBody(body)
	shape := cp.NewBox(body, 2*math.Abs(b.Extents.Z()), 2*math.Abs(b.Extents.Y()), 0)
	shape.SetElasticity(0)
	s.space.AddShape(shape)
	return shape
}

func (s *Space) register(id uint64, body *cp.Body, shape *cp.Shape, b locomotion.Bounds) *Body {
	wrapped := &Body{space: s.space, body: body, shape: shape, depth: b.Center.X(), extents: b.Extents}
	s.shapes[id] = shape
	s.enabled[id] = true
	s.bodies[id] = wrapped
	return wrapped
}

// Body returns the body registered under id, if it is not static.
func (s *Space) Body(id uint64) (*Body, bool) {
	b, ok := s.bodies[id]
	return b, ok
}

// SetShapeEnabled removes or restores a shape's collisions.
func (s *Space) SetShapeEnabled(id uint64, enabled bool) error {
	shape, ok := s.shapes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	if s.enabled[id] == enabled {
		return nil
	}
	if enabled {
		s.space.AddShape(shape)
	} else {
		s.space.RemoveShape(shape)
	}
	s.enabled[id] = enabled
	return nil
}

// ShapeEnabled reports whether id currently collides.
func (s *Space) ShapeEnabled(id uint64) bool {
	return s.enabled[id]
}

// Step advances the simulation. Non-positive dt is ignored.
func (s *Space) Step(dt float64) {
	if s == nil || !(dt > 0) {
		return
	}
	s.space.Step(dt)
}

// CastRay queries the plane. Rays with no component in the plane never hit,
// and the player's shape is never reported.
func (s *Space) CastRay(origin, dir mgl64.Vec3, maxDist float64) (locomotion.Hit, bool) {
	if dir.Len() == 0 || !(maxDist > 0) || math.IsInf(maxDist, 0) {
		return locomotion.Hit{}, false
	}
	dir = dir.Normalize()
	planeDir := cp.Vector{X: dir.Z(), Y: dir.Y()}
	if planeDir.Length() < 1e-9 {
		return locomotion.Hit{}, false
	}
	start := toPlane(origin)
	end := start.Add(planeDir.Mult(maxDist))
	info := s.space.SegmentQueryFirst(start, end, 0, s.filter)
	if info.Shape == nil {
		return locomotion.Hit{}, false
	}
	dist := info.Alpha * maxDist
	hit := locomotion.Hit{
		Distance: dist,
		Point:    origin.Add(dir.Mul(dist)),
		Normal:   mgl64.Vec3{0, info.Normal.Y, info.Normal.X},
	}
	if id, ok := info.Shape.UserData.(uint64); ok {
		hit.Collider = id
	}
	return hit, true
}

func toPlane(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.Z(), Y: v.Y()}
}
