package valentime

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

const (
	// lineWidth is the on-screen width of segments in pixels.
	lineWidth = 1.0
	// minDotRadius keeps far points from vanishing below a pixel.
	minDotRadius = 0.75
	// dotSoftness widens dot quads so the sprite falloff does not shrink
	// the apparent size.
	dotSoftness = 1.6
)

// RenderStats holds per-frame draw metrics. Only populated in debug mode.
type RenderStats struct {
	Particles   int
	Dots        int
	Segments    int
	Culled      int
	Quads       int
	DrawCalls   int
	ProjectTime time.Duration
	SubmitTime  time.Duration
}

// Renderer owns the off-screen draw surface and draws a mounted SceneGraph
// through its camera. Every primitive is blended additively, so draw order
// does not matter and nothing is depth-sorted.
type Renderer struct {
	camera  *Camera
	scene   *SceneGraph
	surface *ebiten.Image
	clear   Color
	logger  *zap.Logger

	width, height int

	dots  triBatch
	lines triBatch

	debug    bool
	stats    RenderStats
	disposed bool
}

// NewRenderer creates a renderer for cam and sizes it to width x height.
func NewRenderer(cam *Camera, width, height int, logger *zap.Logger) *Renderer {
	r := &Renderer{
		camera: cam,
		clear:  ColorBlack,
		logger: orNop(logger).Named("renderer"),
	}
	r.Resize(width, height)
	return r
}

// SetClearColor sets the color the surface is filled with every frame.
func (r *Renderer) SetClearColor(c Color) {
	r.clear = c
}

// SetDebugMode enables per-frame stats collection.
func (r *Renderer) SetDebugMode(enabled bool) {
	r.debug = enabled
}

// Resize updates the camera aspect and reallocates the surface when its
// pixel size changes. Non-positive sizes release the surface.
func (r *Renderer) Resize(width, height int) {
	if r.disposed {
		return
	}
	if r.camera != nil {
		r.camera.Resize(width, height)
	}
	if width == r.width && height == r.height && r.surface != nil {
		return
	}
	r.width, r.height = width, height
	if r.surface != nil {
		r.surface.Deallocate()
		r.surface = nil
	}
	if width <= 0 || height <= 0 {
		return
	}
	r.surface = ebiten.NewImage(width, height)
	r.logger.Debug("surface allocated", zap.Int("width", width), zap.Int("height", height))
}

// Size returns the current surface size.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Mount attaches the scene to draw. Passing nil detaches it.
func (r *Renderer) Mount(sg *SceneGraph) {
	r.scene = sg
}

// Surface returns the off-screen surface, or nil when none is allocated.
func (r *Renderer) Surface() *ebiten.Image {
	return r.surface
}

// Stats returns the metrics of the last rendered frame.
func (r *Renderer) Stats() RenderStats {
	return r.stats
}

// Render draws the mounted scene onto the surface and composites the
// surface onto screen.
func (r *Renderer) Render(screen *ebiten.Image) {
	if r.disposed || r.surface == nil {
		return
	}
	r.surface.Fill(r.clear.toRGBA())

	var t0 time.Time
	if r.debug {
		r.stats = RenderStats{}
		t0 = time.Now()
	}

	sg := r.scene
	if sg != nil && !sg.IsDisposed() && sg.Particles() != nil && r.camera != nil {
		r.dots.reset(sg.dot)
		r.lines.reset(WhitePixel)
		r.projectParticles(sg.Particles())
		for _, o := range sg.Objects() {
			if o.Visible {
				r.projectObject(o)
			}
		}

		var t1 time.Time
		if r.debug {
			t1 = time.Now()
			r.stats.ProjectTime = t1.Sub(t0)
		}

		r.lines.flush(r.surface)
		r.dots.flush(r.surface)

		if r.debug {
			r.stats.SubmitTime = time.Since(t1)
			r.stats.Quads = r.lines.quads + r.dots.quads
			r.stats.DrawCalls = r.lines.drawCalls + r.dots.drawCalls
		}
	}

	if screen != nil {
		screen.DrawImage(r.surface, nil)
	}
}

func (r *Renderer) projectParticles(f *ParticleField) {
	m := f.Transform()
	for i, n := 0, f.Len(); i < n; i++ {
		wp := m.Mul4x1(f.Position(i).Vec4(1)).Vec3()
		sx, sy, scale, ok := r.camera.Project(wp)
		if !ok {
			if r.debug {
				r.stats.Culled++
			}
			continue
		}
		rad := math.Max(minDotRadius, particleSize*0.5*scale*dotSoftness)
		r.dots.appendDot(r.surface, sx, sy, rad, f.Color(i))
		if r.debug {
			r.stats.Particles++
		}
	}
}

func (r *Renderer) projectObject(o *SpatialObject) {
	m := o.Transform()
	for _, s := range o.Segments {
		ax, ay, _, okA := r.camera.Project(m.Mul4x1(s.A.Vec4(1)).Vec3())
		bx, by, _, okB := r.camera.Project(m.Mul4x1(s.B.Vec4(1)).Vec3())
		if !okA || !okB {
			if r.debug {
				r.stats.Culled++
			}
			continue
		}
		r.lines.appendLine(r.surface, ax, ay, bx, by, lineWidth, s.Color)
		if r.debug {
			r.stats.Segments++
		}
	}
	for _, d := range o.Dots {
		sx, sy, scale, ok := r.camera.Project(m.Mul4x1(d.Pos.Vec4(1)).Vec3())
		if !ok {
			if r.debug {
				r.stats.Culled++
			}
			continue
		}
		rad := math.Max(minDotRadius, d.Radius*scale*dotSoftness)
		r.dots.appendDot(r.surface, sx, sy, rad, d.Color)
		if r.debug {
			r.stats.Dots++
		}
	}
}

// Dispose releases the surface and detaches the scene. Calling Dispose
// more than once is a no-op.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	if r.surface != nil {
		r.surface.Deallocate()
		r.surface = nil
	}
	r.scene = nil
	r.logger.Debug("renderer disposed")
}

// IsDisposed reports whether Dispose has been called.
func (r *Renderer) IsDisposed() bool {
	return r.disposed
}
