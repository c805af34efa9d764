package valentime

import (
	"math"
	"testing"
)

func newTestScene(t *testing.T) (*SceneGraph, *Camera) {
	t.Helper()
	cfg := DefaultConfig().Scene
	cfg.ParticleCount = 100
	cfg.Seed = 42
	cam := NewCamera(cfg, 800, 600)
	sg := NewSceneGraph(cfg, 5, cam, nil)
	sg.Initialize()
	t.Cleanup(sg.Dispose)
	return sg, cam
}

func TestSceneInitializeBuildsContent(t *testing.T) {
	sg, _ := newTestScene(t)

	if got := sg.Particles().Len(); got != 100 {
		t.Errorf("particles = %d, want 100", got)
	}
	objs := sg.Objects()
	if len(objs) != 5 {
		t.Fatalf("objects = %d, want 5", len(objs))
	}
	for i, o := range objs {
		if o.Index != i {
			t.Errorf("object %d has Index %d", i, o.Index)
		}
		if want := -float64(i) * 20; o.Position.Z() != want {
			t.Errorf("object %d depth = %v, want %v", i, o.Position.Z(), want)
		}
		if len(o.Dots) == 0 && len(o.Segments) == 0 {
			t.Errorf("object %d is empty", i)
		}
	}
	if sg.dot == nil {
		t.Error("dot sprite not created")
	}
}

func TestSceneInitializeIdempotent(t *testing.T) {
	sg, _ := newTestScene(t)
	first := sg.Objects()[0]
	particles := sg.Particles()

	sg.Initialize()
	if sg.Objects()[0] != first || sg.Particles() != particles {
		t.Error("second Initialize rebuilt the scene")
	}
}

func TestSceneSeedReproducible(t *testing.T) {
	a, _ := newTestScene(t)
	b, _ := newTestScene(t)
	for i := 0; i < a.Particles().Len(); i++ {
		if a.Particles().Position(i) != b.Particles().Position(i) {
			t.Fatalf("particle %d differs between equal seeds", i)
		}
	}
	if len(a.Objects()[4].Dots) != len(b.Objects()[4].Dots) {
		t.Error("sphere grid differs between equal seeds")
	}
}

func TestSceneApplyScrollProgress(t *testing.T) {
	sg, cam := newTestScene(t)

	tests := []struct {
		p, want float64
	}{
		{0, 5},
		{0.5, 5 - 40},
		{1, 5 - 80},
		{-1, 5},
		{2, 5 - 80},
		{math.NaN(), 5},
	}
	for _, tt := range tests {
		sg.ApplyScrollProgress(tt.p)
		if !approxEqual(cam.TargetDepth(), tt.want, epsilon) {
			t.Errorf("ApplyScrollProgress(%v): target depth = %v, want %v", tt.p, cam.TargetDepth(), tt.want)
		}
	}
}

func TestSceneUpdateEasesCamera(t *testing.T) {
	sg, cam := newTestScene(t)
	sg.ApplyScrollProgress(1)

	sg.Update(1.0 / 60)
	// One 5% step of the 80-unit gap.
	if !approxEqual(cam.Z, 5-80*0.05, epsilon) {
		t.Errorf("camera Z after one update = %v, want %v", cam.Z, 5-80*0.05)
	}
	for i := 0; i < 600; i++ {
		sg.Update(1.0 / 60)
	}
	if !approxEqual(cam.Z, -75, 1e-6) {
		t.Errorf("camera Z = %v, want about -75", cam.Z)
	}
}

func TestSceneUpdateRotatesObjects(t *testing.T) {
	sg, _ := newTestScene(t)
	sg.Update(1) // 60 reference frames

	for i, o := range sg.Objects() {
		k := float64(i + 1)
		if !approxEqual(o.RotY, 0.001*k*60, 1e-12) || !approxEqual(o.RotX, 0.0005*k*60, 1e-12) {
			t.Errorf("object %d rotation = (%v, %v)", i, o.RotX, o.RotY)
		}
	}
	if !approxEqual(sg.Particles().RotY, particleSpin*60, 1e-12) {
		t.Errorf("particle RotY = %v, want %v", sg.Particles().RotY, particleSpin*60)
	}
}

func TestSceneVisibilityFollowsCamera(t *testing.T) {
	sg, cam := newTestScene(t)
	objs := sg.Objects()

	for i, o := range objs {
		if !o.Visible {
			t.Errorf("object %d hidden at start", i)
		}
	}

	// Past the first two objects: both are now behind the camera.
	cam.Lerp = 1
	cam.SetTargetDepth(-30)
	sg.Update(1.0 / 60)
	if objs[0].Visible || objs[1].Visible {
		t.Error("objects behind the camera still visible")
	}
	if !objs[2].Visible || !objs[4].Visible {
		t.Error("objects ahead of the camera hidden")
	}
}

func TestSceneOnResize(t *testing.T) {
	sg, cam := newTestScene(t)
	sg.OnResize(1200, 400)
	w, h := sg.Size()
	if w != 1200 || h != 400 {
		t.Errorf("Size = %dx%d, want 1200x400", w, h)
	}
	if !approxEqual(cam.Aspect(), 3, epsilon) {
		t.Errorf("camera aspect = %v, want 3", cam.Aspect())
	}
}

func TestSceneDisposeIdempotent(t *testing.T) {
	sg, _ := newTestScene(t)
	objs := sg.Objects()

	sg.Dispose()
	sg.Dispose()

	if !sg.IsDisposed() {
		t.Error("IsDisposed = false after Dispose")
	}
	if sg.Particles() != nil {
		t.Error("particles kept after Dispose")
	}
	for i, o := range objs {
		if !o.IsDisposed() || o.Visible || o.Dots != nil || o.Segments != nil {
			t.Errorf("object %d not released", i)
		}
	}

	// Updates and re-initialization after Dispose are inert.
	sg.Update(1)
	sg.Initialize()
	if sg.Particles() != nil {
		t.Error("Initialize rebuilt a disposed scene")
	}
}
