package valentime

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestCircularFormation(t *testing.T) {
	s := BuildShape(0, testRand())
	if len(s.Dots) != 20 || len(s.Segments) != 19 {
		t.Fatalf("dots/segments = %d/%d, want 20/19", len(s.Dots), len(s.Segments))
	}
	for i, d := range s.Dots {
		if r := d.Pos.Len(); math.Abs(r-3) > 1e-9 {
			t.Errorf("dot %d at radius %v, want 3", i, r)
		}
	}
}

func TestDoubleHelix(t *testing.T) {
	s := BuildShape(1, testRand())
	if len(s.Dots) != 80 || len(s.Segments) != 8 {
		t.Fatalf("dots/segments = %d/%d, want 80/8", len(s.Dots), len(s.Segments))
	}
	for i := 0; i < len(s.Dots); i += 2 {
		a, b := s.Dots[i].Pos, s.Dots[i+1].Pos
		if a.Y() != b.Y() {
			t.Errorf("strand points %d not level", i/2)
		}
		if !a.Add(b).ApproxEqualThreshold(mgl64.Vec3{0, 2 * a.Y(), 0}, 1e-9) {
			t.Errorf("strand points %d not opposite", i/2)
		}
	}
}

func TestCrystal(t *testing.T) {
	s := BuildShape(2, testRand())
	if len(s.Segments) != 30+12 {
		t.Fatalf("segments = %d, want 30 edges + 12 spikes", len(s.Segments))
	}
	if len(s.Dots) != 12 {
		t.Fatalf("dots = %d, want 12 spike tips", len(s.Dots))
	}
	for i, d := range s.Dots {
		r := d.Pos.Len()
		if r < 1.5+1 || r > 1.5+3 {
			t.Errorf("spike tip %d at radius %v, want in [2.5, 4.5]", i, r)
		}
	}
}

func TestWaveField(t *testing.T) {
	s := BuildShape(3, testRand())
	// 21x21 vertices: 20 horizontal and 20 vertical edges per line.
	if len(s.Segments) != 2*21*20 {
		t.Errorf("segments = %d, want %d", len(s.Segments), 2*21*20)
	}
	if len(s.Dots) != 15 {
		t.Errorf("orbs = %d, want 15", len(s.Dots))
	}
	for _, seg := range s.Segments {
		if math.Abs(seg.A.Z()) > 0.5+1e-9 {
			t.Fatalf("grid vertex displaced by %v, beyond amplitude", seg.A.Z())
		}
	}
}

func TestSphereGrid(t *testing.T) {
	s := BuildShape(4, testRand())
	if len(s.Dots) == 0 || len(s.Dots) > 64 {
		t.Fatalf("spheres = %d, want 1..64", len(s.Dots))
	}
	for _, seg := range s.Segments {
		if l := seg.A.Sub(seg.B).Len(); math.Abs(l-1) > 1e-9 {
			t.Fatalf("link length %v, want the lattice spacing 1", l)
		}
	}
}

func TestTorusKnotFallback(t *testing.T) {
	s := BuildShape(7, testRand())
	if len(s.Segments) != 100 || len(s.Dots) != 100 {
		t.Fatalf("dots/segments = %d/%d, want 100/100", len(s.Dots), len(s.Segments))
	}
	// The knot closes on itself.
	first, last := s.Segments[0].A, s.Segments[99].B
	if !first.ApproxEqualThreshold(last, 1e-9) {
		t.Errorf("knot not closed: %v vs %v", first, last)
	}
}

func TestParticleFieldOnSphere(t *testing.T) {
	f := NewParticleField(500, 50, 0.5, testRand())
	if f.Len() != 500 {
		t.Fatalf("Len = %d", f.Len())
	}
	for i := 0; i < f.Len(); i++ {
		if r := f.Position(i).Len(); math.Abs(r-50) > 1e-9 {
			t.Fatalf("particle %d at radius %v, want 50", i, r)
		}
		if a := f.Color(i).A; a != particleOpacity {
			t.Fatalf("particle %d alpha = %v", i, a)
		}
	}
	if NewParticleField(-3, 50, 0, testRand()).Len() != 0 {
		t.Error("negative count produced particles")
	}
}

func TestParticleFieldBobIsBounded(t *testing.T) {
	f := NewParticleField(50, 50, 0.5, testRand())
	base := make([]float64, f.Len())
	for i := range base {
		base[i] = f.Position(i).Y()
	}
	for step := 0; step < 10000; step++ {
		f.update(1.0 / 60)
	}
	for i := range base {
		if d := math.Abs(f.Position(i).Y() - base[i]); d > 0.5+1e-9 {
			t.Fatalf("particle %d drifted %v, beyond amplitude", i, d)
		}
	}
}
