package valentime

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// dotImageSize is the pixel size of the soft round sprite used for points.
const dotImageSize = 32

// SceneGraph owns the 3D content: the particle field, one SpatialObject per
// section and the camera that travels past them. It has no knowledge of
// sections or scrolling beyond the progress value it is handed.
type SceneGraph struct {
	cfg      SceneConfig
	camera   *Camera
	sections int
	logger   *zap.Logger

	objects   []*SpatialObject
	particles *ParticleField
	dot       *ebiten.Image

	width, height int
	progress      float64

	initialized bool
	disposed    bool
}

// NewSceneGraph creates an empty scene for the given number of sections,
// viewed through cam. Call Initialize before the first Update.
func NewSceneGraph(cfg SceneConfig, sections int, cam *Camera, logger *zap.Logger) *SceneGraph {
	return &SceneGraph{
		cfg:      cfg,
		camera:   cam,
		sections: sections,
		logger:   orNop(logger).Named("scene"),
	}
}

// Initialize builds the particle field and the section objects, placing
// object i at depth -i*SectionSpacing. Calling it again is a no-op.
func (s *SceneGraph) Initialize() {
	if s.initialized || s.disposed {
		return
	}
	s.initialized = true

	seed := s.cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	s.particles = NewParticleField(s.cfg.ParticleCount, s.cfg.ParticleRadius, s.cfg.ParticleDrift, rng)
	s.objects = make([]*SpatialObject, s.sections)
	for i := range s.objects {
		s.objects[i] = newSpatialObject(i, BuildShape(i, rng), -float64(i)*s.cfg.SectionSpacing)
	}
	s.dot = newDotImage(dotImageSize)
	s.updateVisibility()

	s.logger.Info("scene initialized",
		zap.Int("particles", s.particles.Len()),
		zap.Int("objects", len(s.objects)),
		zap.Uint64("seed", seed))
}

// ApplyScrollProgress converts scroll progress into a camera target depth:
// InitialDepth - TotalTravel*p. The camera reaches it gradually in Update.
func (s *SceneGraph) ApplyScrollProgress(p float64) {
	s.progress = clamp01(p)
	if s.camera != nil {
		s.camera.SetTargetDepth(s.cfg.InitialDepth - s.cfg.TotalTravel*s.progress)
	}
}

// Progress returns the last progress passed to ApplyScrollProgress.
func (s *SceneGraph) Progress() float64 {
	return s.progress
}

// Update advances idle animation by dt seconds and moves the camera one
// lerp step toward its target.
func (s *SceneGraph) Update(dt float64) {
	if !s.initialized || s.disposed {
		return
	}
	if s.camera != nil {
		s.camera.update()
	}
	frames := dt * referenceFPS
	s.particles.update(dt)
	for _, o := range s.objects {
		o.rotate(frames)
	}
	s.updateVisibility()
}

func (s *SceneGraph) updateVisibility() {
	if s.camera == nil {
		return
	}
	for _, o := range s.objects {
		o.Visible = !o.IsDisposed() && s.camera.InView(o.Position.Z())
	}
}

// OnResize records the new viewport size and updates the camera aspect.
func (s *SceneGraph) OnResize(width, height int) {
	s.width, s.height = width, height
	if s.camera != nil {
		s.camera.Resize(width, height)
	}
}

// Size returns the viewport size last passed to OnResize.
func (s *SceneGraph) Size() (width, height int) {
	return s.width, s.height
}

// Dispose releases the point sprite and every spatial object. Calling
// Dispose more than once is a no-op.
func (s *SceneGraph) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, o := range s.objects {
		o.Dispose()
	}
	if s.dot != nil {
		s.dot.Deallocate()
		s.dot = nil
	}
	s.particles = nil
	s.logger.Debug("scene disposed")
}

// IsDisposed reports whether Dispose has been called.
func (s *SceneGraph) IsDisposed() bool {
	return s.disposed
}

// Camera returns the scene camera.
func (s *SceneGraph) Camera() *Camera {
	return s.camera
}

// Objects returns the section objects in index order.
func (s *SceneGraph) Objects() []*SpatialObject {
	return s.objects
}

// Particles returns the particle field, or nil before Initialize or after
// Dispose.
func (s *SceneGraph) Particles() *ParticleField {
	return s.particles
}

// newDotImage renders a soft white disc with a smooth falloff.
func newDotImage(size int) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	pix := make([]byte, 4*size*size)
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) + 0.5 - c) / c
			dy := (float64(y) + 0.5 - c) / c
			d := math.Sqrt(dx*dx + dy*dy)
			a := clamp01(1 - d)
			a = a * a * (3 - 2*a)
			v := byte(a*255 + 0.5)
			i := 4 * (y*size + x)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, v
		}
	}
	img.WritePixels(pix)
	return img
}
