package valentime

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// particlePalette is the set of tints a particle is drawn from.
var particlePalette = [...]Color{
	Gray(1),
	Gray(0xf5 / 255.0),
	Gray(0xe0 / 255.0),
}

const (
	// particleSize is the world-space diameter of one particle.
	particleSize = 0.1
	// particleOpacity is the alpha every particle is drawn with.
	particleOpacity = 0.6
	// particleSpin is the Y rotation per reference frame.
	particleSpin = 0.0005
	// particleWaveRate is the phase advance of the drift wave per second.
	particleWaveRate = 0.1
)

// ParticleField is a static cloud of points spread uniformly over a sphere
// surface. It spins slowly about Y and each point bobs on a sine wave.
// Points are never spawned or retired after construction.
type ParticleField struct {
	// RotY is the field rotation in radians about the Y axis.
	RotY float64

	base    []mgl64.Vec3
	y       []float64
	colors  []Color
	drift   float64
	elapsed float64
}

// NewParticleField places count points on a sphere of the given radius.
// drift is the amplitude of the vertical bob.
func NewParticleField(count int, radius, drift float64, rng *rand.Rand) *ParticleField {
	if count < 0 {
		count = 0
	}
	f := &ParticleField{
		base:   make([]mgl64.Vec3, count),
		y:      make([]float64, count),
		colors: make([]Color, count),
		drift:  drift,
	}
	for i := 0; i < count; i++ {
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)
		p := mgl64.Vec3{
			radius * math.Sin(phi) * math.Cos(theta),
			radius * math.Sin(phi) * math.Sin(theta),
			radius * math.Cos(phi),
		}
		f.base[i] = p
		f.y[i] = p.Y()
		c := particlePalette[rng.IntN(len(particlePalette))]
		f.colors[i] = c.WithAlpha(particleOpacity)
	}
	return f
}

// Len returns the number of particles.
func (f *ParticleField) Len() int {
	return len(f.base)
}

// Position returns particle i in the field's local space.
func (f *ParticleField) Position(i int) mgl64.Vec3 {
	p := f.base[i]
	return mgl64.Vec3{p.X(), f.y[i], p.Z()}
}

// Color returns the tint of particle i.
func (f *ParticleField) Color(i int) Color {
	return f.colors[i]
}

// Transform returns the local-to-world matrix.
func (f *ParticleField) Transform() mgl64.Mat4 {
	return mgl64.HomogRotate3DY(f.RotY)
}

// update advances the spin and recomputes the bob from elapsed time, so the
// offset stays bounded by the drift amplitude however long the field runs.
func (f *ParticleField) update(dt float64) {
	f.elapsed += dt
	f.RotY += particleSpin * referenceFPS * dt
	phase := f.elapsed * particleWaveRate
	for i, p := range f.base {
		f.y[i] = p.Y() + f.drift*math.Sin(phase+p.X()*0.1)
	}
}
