package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/locomotion"
)

// Body adapts a Chipmunk body to world coordinates. It implements
// locomotion.MotionSink; the depth component of any vector written to it is dropped.
type Body struct {
	space   *cp.Space
	body    *cp.Body
	shape   *cp.Shape
	depth   float64
	extents mgl64.Vec3
}

// Raw returns the Chipmunk body.
func (b *Body) Raw() *cp.Body {
	if b == nil {
		return nil
	}
	return b.body
}

func (b *Body) Velocity() mgl64.Vec3 {
	if b == nil {
		return mgl64.Vec3{}
	}
	v := b.body.Velocity()
	return mgl64.Vec3{0, v.Y, v.X}
}

func (b *Body) SetVelocity(v mgl64.Vec3) {
	if b == nil {
		return
	}
	b.body.SetVelocityVector(toPlane(v))
}

func (b *Body) ApplyImpulse(j mgl64.Vec3) {
	if b == nil {
		return
	}
	b.body.ApplyImpulseAtLocalPoint(toPlane(j), cp.Vector{})
}

func (b *Body) Position() mgl64.Vec3 {
	if b == nil {
		return mgl64.Vec3{}
	}
	p := b.body.Position()
	return mgl64.Vec3{b.depth, p.Y, p.X}
}

func (b *Body) SetPosition(p mgl64.Vec3) {
	if b == nil {
		return
	}
	b.depth = p.X()
	b.body.SetPosition(toPlane(p))
	b.reindex()
}

// reindex refreshes the shape's entry in the space's spatial index so queries
// made before the next Step see the new position.
func (b *Body) reindex() {
	if b.space == nil || b.shape == nil || !b.space.ContainsShape(b.shape) {
		return
	}
	b.space.RemoveShape(b.shape)
	b.space.AddShape(b.shape)
}

// Translate moves the body by d without touching its velocity.
func (b *Body) Translate(d mgl64.Vec3) {
	b.SetPosition(b.Position().Add(d))
}

// MoveKinematic sets the velocity that carries the body to target over dt.
// The position is reached by the next Space.Step.
func (b *Body) MoveKinematic(target mgl64.Vec3, dt float64) {
	if b == nil || !(dt > 0) {
		return
	}
	b.depth = target.X()
	d := toPlane(target).Sub(b.body.Position())
	b.body.SetVelocityVector(d.Mult(1 / dt))
}

// Bounds returns the body's collider volume at its current position.
func (b *Body) Bounds() locomotion.Bounds {
	return locomotion.Bounds{Center: b.Position(), Extents: b.extents}
}

func (b *Body) Mass() float64 {
	if b == nil {
		return 0
	}
	return b.body.Mass()
}
