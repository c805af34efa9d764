package valentime

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking down the -Z axis. It travels in
// depth only: the scroll position sets a target depth and the camera eases
// toward it a fixed fraction every frame.
type Camera struct {
	// X, Y and Z are the world-space eye position.
	X, Y, Z float64
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near and Far bound the visible depth range.
	Near, Far float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	// Lerp is the fraction of the remaining depth covered per update.
	// A lerp of 1.0 snaps immediately.
	Lerp float64

	targetZ float64

	view     mgl64.Mat4
	proj     mgl64.Mat4
	viewProj mgl64.Mat4
	dirty    bool
}

// NewCamera creates a camera at the configured initial depth with a
// viewport of width x height pixels.
func NewCamera(cfg SceneConfig, width, height int) *Camera {
	return newCamera(cfg, Rect{Width: float64(width), Height: float64(height)})
}

func newCamera(cfg SceneConfig, viewport Rect) *Camera {
	lerp := cfg.CameraLerp
	if lerp <= 0 || lerp > 1 {
		lerp = 1
	}
	return &Camera{
		Z:        cfg.InitialDepth,
		FOV:      cfg.FOV,
		Near:     cfg.Near,
		Far:      cfg.Far,
		Viewport: viewport,
		Lerp:     lerp,
		targetZ:  cfg.InitialDepth,
		dirty:    true,
	}
}

// SetTargetDepth sets the depth the camera eases toward.
func (c *Camera) SetTargetDepth(z float64) {
	c.targetZ = z
}

// TargetDepth returns the depth the camera is easing toward.
func (c *Camera) TargetDepth() float64 {
	return c.targetZ
}

// Aspect returns the viewport aspect ratio, or 1 for an empty viewport.
func (c *Camera) Aspect() float64 {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return 1
	}
	return c.Viewport.Width / c.Viewport.Height
}

// Resize sets the viewport to width x height pixels and recomputes the
// projection.
func (c *Camera) Resize(width, height int) {
	c.Viewport.Width = float64(width)
	c.Viewport.Height = float64(height)
	c.dirty = true
}

// MarkDirty forces the matrices to be recomputed on next use.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// update moves the camera one step toward its target depth.
func (c *Camera) update() {
	dz := c.targetZ - c.Z
	if dz == 0 {
		return
	}
	c.Z += dz * c.Lerp
	c.dirty = true
}

// computeViewProj recomputes the view and projection matrices if dirty.
func (c *Camera) computeViewProj() mgl64.Mat4 {
	if !c.dirty {
		return c.viewProj
	}
	eye := mgl64.Vec3{c.X, c.Y, c.Z}
	center := eye.Add(mgl64.Vec3{0, 0, -1})
	c.view = mgl64.LookAtV(eye, center, mgl64.Vec3{0, 1, 0})
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect(), c.Near, c.Far)
	c.viewProj = c.proj.Mul4(c.view)
	c.dirty = false
	return c.viewProj
}

// Project maps a world-space point to screen space. scale is the number of
// screen pixels covered by one world unit at the point's depth. ok is false
// for points in front of the near plane or beyond the far plane.
func (c *Camera) Project(p mgl64.Vec3) (sx, sy, scale float64, ok bool) {
	vp := c.computeViewProj()
	clip := vp.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w < c.Near || w > c.Far {
		return 0, 0, 0, false
	}
	nx := clip.X() / w
	ny := clip.Y() / w
	sx = c.Viewport.X + (nx+1)*0.5*c.Viewport.Width
	sy = c.Viewport.Y + (1-ny)*0.5*c.Viewport.Height
	scale = c.proj.At(1, 1) * 0.5 * c.Viewport.Height / w
	return sx, sy, scale, true
}

// InView reports whether a point at world depth z lies between the near and
// far planes.
func (c *Camera) InView(z float64) bool {
	d := c.Z - z
	return d >= c.Near && d <= c.Far
}
