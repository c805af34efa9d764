package valentime

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Dot is a round point primitive. Radius is in world units.
type Dot struct {
	Pos    mgl64.Vec3
	Radius float64
	Color  Color
}

// Segment is a straight line primitive between two local-space points.
type Segment struct {
	A, B  mgl64.Vec3
	Color Color
}

// SpatialObject is the 3D tableau bound to one section. Its primitives are
// in local space; Position, RotX and RotY place them in the world.
type SpatialObject struct {
	// Index is the section this object belongs to.
	Index int
	// Position is the world-space origin.
	Position mgl64.Vec3
	// RotX and RotY are rotations in radians about the local X and Y axes.
	RotX, RotY float64
	// Visible is false when the object is behind the camera or past the
	// far plane.
	Visible bool

	Dots     []Dot
	Segments []Segment

	disposed bool
}

// newSpatialObject places the shape for index at world depth z.
func newSpatialObject(index int, shape Shape, z float64) *SpatialObject {
	return &SpatialObject{
		Index:    index,
		Position: mgl64.Vec3{0, 0, z},
		Visible:  true,
		Dots:     shape.Dots,
		Segments: shape.Segments,
	}
}

// Transform returns the local-to-world matrix: translate, then rotate Y,
// then rotate X.
func (o *SpatialObject) Transform() mgl64.Mat4 {
	return mgl64.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z()).
		Mul4(mgl64.HomogRotate3DY(o.RotY)).
		Mul4(mgl64.HomogRotate3DX(o.RotX))
}

// rotate advances the idle rotation by frames reference frames.
func (o *SpatialObject) rotate(frames float64) {
	k := float64(o.Index + 1)
	o.RotY += 0.001 * k * frames
	o.RotX += 0.0005 * k * frames
}

// Dispose releases the object's primitives. Calling Dispose more than once
// is a no-op.
func (o *SpatialObject) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	o.Visible = false
	o.Dots = nil
	o.Segments = nil
}

// IsDisposed reports whether Dispose has been called.
func (o *SpatialObject) IsDisposed() bool {
	return o.disposed
}
