package valentime

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is the primitive list produced by a content generator.
type Shape struct {
	Dots     []Dot
	Segments []Segment
}

func (s *Shape) dot(p mgl64.Vec3, r float64, c Color) {
	s.Dots = append(s.Dots, Dot{Pos: p, Radius: r, Color: c})
}

func (s *Shape) line(a, b mgl64.Vec3, c Color) {
	s.Segments = append(s.Segments, Segment{A: a, B: b, Color: c})
}

// random returns a uniform value in [r.Min, r.Max).
func (r Range) random(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// BuildShape returns the tableau for the section at index. Indices without
// a dedicated design get a torus knot. rng supplies every random choice so
// a fixed seed reproduces the same content.
func BuildShape(index int, rng *rand.Rand) Shape {
	switch index {
	case 0:
		return circularFormation()
	case 1:
		return doubleHelix()
	case 2:
		return crystal(rng)
	case 3:
		return waveField(rng)
	case 4:
		return sphereGrid(rng)
	default:
		return torusKnot()
	}
}

// circularFormation is a ring of 20 spheres joined by open chords.
func circularFormation() Shape {
	const (
		count  = 20
		radius = 3.0
	)
	var s Shape
	at := func(i int) mgl64.Vec3 {
		a := float64(i) / count * 2 * math.Pi
		return mgl64.Vec3{math.Cos(a) * radius, math.Sin(a) * radius, 0}
	}
	for i := 0; i < count; i++ {
		if i > 0 {
			s.line(at(i), at(i-1), ColorWhite.WithAlpha(0.5))
		}
		s.dot(at(i), 0.2, ColorWhite)
	}
	return s
}

// doubleHelix is two interleaved spirals with a rung every fifth step.
func doubleHelix() Shape {
	const (
		count  = 40
		radius = 2.0
		height = 8.0
	)
	var s Shape
	c1 := Gray(0xf5 / 255.0)
	c2 := Gray(0xe0 / 255.0)
	for i := 0; i < count; i++ {
		t := float64(i) / count
		a := t * 4 * math.Pi
		y := t*height - height/2
		p1 := mgl64.Vec3{math.Cos(a) * radius, y, math.Sin(a) * radius}
		p2 := mgl64.Vec3{math.Cos(a+math.Pi) * radius, y, math.Sin(a+math.Pi) * radius}
		if i%5 == 0 {
			s.line(p1, p2, ColorWhite.WithAlpha(0.3))
		}
		s.dot(p1, 0.15, c1)
		s.dot(p2, 0.15, c2)
	}
	return s
}

var icosahedronVerts = func() []mgl64.Vec3 {
	phi := (1 + math.Sqrt(5)) / 2
	return []mgl64.Vec3{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}
}()

// crystal is a wireframe icosahedron with a spike of random length
// radiating from every vertex.
func crystal(rng *rand.Rand) Shape {
	const radius = 1.5
	spike := Range{Min: 1, Max: 3}
	var s Shape

	verts := make([]mgl64.Vec3, len(icosahedronVerts))
	for i, v := range icosahedronVerts {
		verts[i] = v.Normalize().Mul(radius)
	}
	// Adjacent vertices of the unit-edge-2 icosahedron are exactly 2 apart.
	for i := range icosahedronVerts {
		for j := i + 1; j < len(icosahedronVerts); j++ {
			if math.Abs(icosahedronVerts[i].Sub(icosahedronVerts[j]).Len()-2) < 1e-9 {
				s.line(verts[i], verts[j], ColorWhite.WithAlpha(0.8))
			}
		}
	}
	for _, v := range verts {
		n := v.Normalize()
		tip := v.Add(n.Mul(spike.random(rng)))
		s.line(v, tip, ColorWhite.WithAlpha(0.6))
		s.dot(tip, 0.05, ColorWhite.WithAlpha(0.6))
	}
	return s
}

// waveField is a 10x10 wireframe grid displaced by a sine wave, with
// orbs floating above it.
func waveField(rng *rand.Rand) Shape {
	const (
		size      = 10.0
		segments  = 20
		amplitude = 0.5
		orbs      = 15
	)
	var s Shape
	grid := make([]mgl64.Vec3, (segments+1)*(segments+1))
	at := func(ix, iy int) *mgl64.Vec3 { return &grid[iy*(segments+1)+ix] }
	for iy := 0; iy <= segments; iy++ {
		for ix := 0; ix <= segments; ix++ {
			x := -size/2 + float64(ix)*size/segments
			y := size/2 - float64(iy)*size/segments
			*at(ix, iy) = mgl64.Vec3{x, y, amplitude * math.Sin(x*2) * math.Cos(y*2)}
		}
	}
	wire := ColorWhite.WithAlpha(0.6)
	for iy := 0; iy <= segments; iy++ {
		for ix := 0; ix <= segments; ix++ {
			if ix < segments {
				s.line(*at(ix, iy), *at(ix+1, iy), wire)
			}
			if iy < segments {
				s.line(*at(ix, iy), *at(ix, iy+1), wire)
			}
		}
	}

	orbRadius := Range{Min: 0.1, Max: 0.3}
	for i := 0; i < orbs; i++ {
		r := orbRadius.random(rng)
		p := mgl64.Vec3{
			(rng.Float64() - 0.5) * size,
			(rng.Float64() - 0.5) * size,
			amplitude*2 + rng.Float64()*2,
		}
		s.dot(p, r, ColorWhite.WithAlpha(0.7))
	}
	return s
}

// sphereGrid is a 4x4x4 lattice with about 30% of cells left empty. Each
// kept sphere is joined to its lower neighbours on all three axes.
func sphereGrid(rng *rand.Rand) Shape {
	const (
		size  = 3.0
		count = 4
	)
	spacing := size / (count - 1)
	var s Shape
	for x := 0; x < count; x++ {
		for y := 0; y < count; y++ {
			for z := 0; z < count; z++ {
				if rng.Float64() > 0.7 {
					continue
				}
				p := mgl64.Vec3{
					(float64(x) - (count-1)/2.0) * spacing,
					(float64(y) - (count-1)/2.0) * spacing,
					(float64(z) - (count-1)/2.0) * spacing,
				}
				r := 0.1 + 0.05*(math.Sin(float64(x+y+z))+1)
				s.dot(p, r, ColorWhite.WithAlpha(0.8))

				link := ColorWhite.WithAlpha(0.2)
				if x > 0 {
					s.line(p, p.Sub(mgl64.Vec3{spacing, 0, 0}), link)
				}
				if y > 0 {
					s.line(p, p.Sub(mgl64.Vec3{0, spacing, 0}), link)
				}
				if z > 0 {
					s.line(p, p.Sub(mgl64.Vec3{0, 0, spacing}), link)
				}
			}
		}
	}
	return s
}

// torusKnot is a (2,3) torus knot traced as a closed polyline.
func torusKnot() Shape {
	const (
		radius   = 1.0
		tube     = 0.3
		segments = 100
		p        = 2.0
		q        = 3.0
	)
	var s Shape
	at := func(i int) mgl64.Vec3 {
		u := float64(i) / segments * p * 2 * math.Pi
		qu := q / p * u
		cs := math.Cos(qu)
		return mgl64.Vec3{
			radius * (2 + cs) * 0.5 * math.Cos(u),
			radius * (2 + cs) * 0.5 * math.Sin(u),
			radius * math.Sin(qu) * 0.5,
		}
	}
	for i := 0; i < segments; i++ {
		a, b := at(i), at(i+1)
		s.line(a, b, ColorWhite)
		s.dot(a, tube/2, ColorWhite.WithAlpha(0.5))
	}
	return s
}
